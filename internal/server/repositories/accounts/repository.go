package accounts

import (
	"context"

	"factforum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	UpdateActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	CountByRole(ctx context.Context) (map[models.Role]int64, error)
}
