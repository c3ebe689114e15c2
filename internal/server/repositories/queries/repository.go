package queries

import (
	"context"

	"factforum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, query *models.Query) (*models.Query, error)
	GetByID(ctx context.Context, id int64) (*models.Query, error)
	ListAll(ctx context.Context) ([]*models.Query, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Query, error)
	MarkAnswered(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountAnswered(ctx context.Context) (int64, error)
	CountByStudent(ctx context.Context, studentID int64) (int64, error)
}
