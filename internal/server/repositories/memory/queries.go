package memory

import (
	"context"
	"sort"
	"sync"

	"factforum/internal/common"
	"factforum/internal/server/models"
)

type queryRow struct {
	query models.Query
}

type QueryRepository struct {
	mu     *sync.Mutex
	items  map[int64]*queryRow
	nextID int64
}

func (r *QueryRepository) Create(ctx context.Context, query *models.Query) (*models.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	query.ID = r.nextID
	r.items[query.ID] = &queryRow{query: *query}
	return query, nil
}

func (r *QueryRepository) GetByID(ctx context.Context, id int64) (*models.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	q := row.query
	return &q, nil
}

func (r *QueryRepository) ListAll(ctx context.Context) ([]*models.Query, error) {
	return r.listWhere(func(q *models.Query) bool { return true })
}

func (r *QueryRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Query, error) {
	return r.listWhere(func(q *models.Query) bool { return q.StudentID == studentID })
}

func (r *QueryRepository) MarkAnswered(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok {
		return nil
	}
	if !row.query.Answered {
		row.query.Answered = true
	}
	return nil
}

func (r *QueryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *QueryRepository) Count(ctx context.Context) (int64, error) {
	return r.countWhere(func(q *models.Query) bool { return true })
}

func (r *QueryRepository) CountAnswered(ctx context.Context) (int64, error) {
	return r.countWhere(func(q *models.Query) bool { return q.Answered })
}

func (r *QueryRepository) CountByStudent(ctx context.Context, studentID int64) (int64, error) {
	return r.countWhere(func(q *models.Query) bool { return q.StudentID == studentID })
}

func (r *QueryRepository) listWhere(pred func(*models.Query) bool) ([]*models.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Query
	for _, row := range r.items {
		if pred(&row.query) {
			q := row.query
			result = append(result, &q)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *QueryRepository) countWhere(pred func(*models.Query) bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, row := range r.items {
		if pred(&row.query) {
			n++
		}
	}
	return n, nil
}
