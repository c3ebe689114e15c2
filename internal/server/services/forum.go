package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"factforum/internal/common"
	"factforum/internal/dbx"
	"factforum/internal/server/models"
	"factforum/internal/server/repositories/repomanager"
)

// ForumService implements the query/response lifecycle: creation, answering,
// read projections, the two-phase delete cascade, and admin statistics.
type ForumService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewForumService constructs a ForumService over the shared store.
func NewForumService(db *sql.DB, m repomanager.RepositoryManager) *ForumService {
	return &ForumService{db: db, repomanager: m}
}

// CreateQuery posts a new query owned by the authenticated student. Title and
// description must be non-empty.
func (s *ForumService) CreateQuery(ctx context.Context, username, title, description string) (*models.Query, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, common.ErrorValidation
	}

	student, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	query := &models.Query{
		Title:       title,
		Description: description,
		StudentID:   student.ID,
		CreatedAt:   time.Now().UTC(),
		Answered:    false,
	}

	return s.repomanager.Queries(s.db).Create(ctx, query)
}

// Respond attaches a faculty response to a query. The first response flips
// the query's answered flag; later responses find it already set and leave
// it alone. Insert and flag transition happen in one transaction.
func (s *ForumService) Respond(ctx context.Context, username string, queryID int64, content string) (*models.Response, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.ErrorValidation
	}

	faculty, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var response *models.Response
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query, err := s.repomanager.Queries(tx).GetByID(ctx, queryID)
		if err != nil {
			return err
		}

		r := &models.Response{
			QueryID:   query.ID,
			FacultyID: faculty.ID,
			Content:   content,
			CreatedAt: time.Now().UTC(),
		}
		r, err = s.repomanager.Responses(tx).Create(ctx, r)
		if err != nil {
			return err
		}

		if err := s.repomanager.Queries(tx).MarkAnswered(ctx, query.ID); err != nil {
			return err
		}

		response = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListAll returns every query with its responses, visible to all roles.
func (s *ForumService) ListAll(ctx context.Context) ([]models.QueryProjection, error) {
	list, err := s.repomanager.Queries(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, list)
}

// Get returns a single query with its responses.
func (s *ForumService) Get(ctx context.Context, id int64) (*models.QueryProjection, error) {
	query, err := s.repomanager.Queries(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	responses, err := s.repomanager.Responses(s.db).ListByQuery(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.QueryProjection{Query: *query, Responses: responses}, nil
}

// ListMine returns the authenticated student's own queries with responses.
func (s *ForumService) ListMine(ctx context.Context, username string) ([]models.QueryProjection, error) {
	student, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	list, err := s.repomanager.Queries(s.db).ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, list)
}

// ListFacultyResponses returns the authenticated faculty member's responses
// joined with their parent queries.
func (s *ForumService) ListFacultyResponses(ctx context.Context, username string) ([]models.FacultyResponse, error) {
	faculty, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Responses(s.db).ListByFaculty(ctx, faculty.ID)
}

// DeleteQuery removes a query and every response attached to it. The two
// deletes run inside one transaction: responses first, then the query, so a
// failure never leaves orphaned responses. The parent query's answered flag
// is irrelevant here; the whole row goes away.
func (s *ForumService) DeleteQuery(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Queries(tx).GetByID(ctx, id); err != nil {
			return err
		}

		if _, err := s.repomanager.Responses(tx).DeleteByQuery(ctx, id); err != nil {
			return err
		}

		return s.repomanager.Queries(tx).Delete(ctx, id)
	})
}

// DeleteResponse removes a single response. The parent query's answered flag
// is deliberately not re-evaluated, even if this was the only response.
func (s *ForumService) DeleteResponse(ctx context.Context, id int64) error {
	return s.repomanager.Responses(s.db).Delete(ctx, id)
}

// Stats gathers the admin dashboard counters, including both definitions of
// "answered" (see models.Stats).
func (s *ForumService) Stats(ctx context.Context) (*models.Stats, error) {
	byRole, err := s.repomanager.Accounts(s.db).CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	queriesRepo := s.repomanager.Queries(s.db)
	totalQueries, err := queriesRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	answeredByFlag, err := queriesRepo.CountAnswered(ctx)
	if err != nil {
		return nil, err
	}

	responsesRepo := s.repomanager.Responses(s.db)
	totalResponses, err := responsesRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	answeredByPresence, err := responsesRepo.CountDistinctQueries(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		Students:       byRole[models.RoleStudent],
		Faculty:        byRole[models.RoleFaculty],
		Admins:         byRole[models.RoleAdmin],
		TotalQueries:   totalQueries,
		TotalResponses: totalResponses,

		AnsweredByFlag:             answeredByFlag,
		AnsweredByResponsePresence: answeredByPresence,
		PendingByFlag:              totalQueries - answeredByFlag,
		PendingByResponsePresence:  totalQueries - answeredByPresence,
	}
	stats.TotalAccounts = stats.Students + stats.Faculty + stats.Admins
	return stats, nil
}

func (s *ForumService) project(ctx context.Context, list []*models.Query) ([]models.QueryProjection, error) {
	responsesRepo := s.repomanager.Responses(s.db)

	result := make([]models.QueryProjection, 0, len(list))
	for _, q := range list {
		rs, err := responsesRepo.ListByQuery(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.QueryProjection{Query: *q, Responses: rs})
	}
	return result, nil
}
