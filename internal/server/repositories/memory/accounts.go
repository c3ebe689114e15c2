package memory

import (
	"context"
	"sort"
	"sync"

	"factforum/internal/common"
	"factforum/internal/server/models"
)

type accountRow struct {
	account models.Account
}

type AccountRepository struct {
	mu     *sync.Mutex
	items  map[int64]*accountRow
	nextID int64
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.items {
		if row.account.Username == account.Username {
			return nil, common.ErrorConflict
		}
	}

	r.nextID++
	account.ID = r.nextID
	r.items[account.ID] = &accountRow{account: *account}
	return account, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.items {
		if row.account.Username == username {
			a := row.account
			return &a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := row.account
	return &a, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Account, 0, len(r.items))
	for _, row := range r.items {
		a := row.account
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	row.account.Role = role
	return nil
}

func (r *AccountRepository) UpdateActive(ctx context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	row.account.Active = active
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *AccountRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[models.Role]int64)
	for _, row := range r.items {
		result[row.account.Role]++
	}
	return result, nil
}
