package responses

import (
	"context"

	"factforum/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, response *models.Response) (*models.Response, error)
	ListByQuery(ctx context.Context, queryID int64) ([]models.Response, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]models.FacultyResponse, error)
	Delete(ctx context.Context, id int64) error
	DeleteByQuery(ctx context.Context, queryID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountDistinctQueries(ctx context.Context) (int64, error)
	CountByFaculty(ctx context.Context, facultyID int64) (int64, error)
}
