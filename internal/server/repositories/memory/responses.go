package memory

import (
	"context"
	"sort"
	"sync"

	"factforum/internal/common"
	"factforum/internal/server/models"
)

type responseRow struct {
	response models.Response
}

type ResponseRepository struct {
	mu      *sync.Mutex
	items   map[int64]*responseRow
	queries *QueryRepository
	nextID  int64
}

func (r *ResponseRepository) Create(ctx context.Context, response *models.Response) (*models.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	response.ID = r.nextID
	r.items[response.ID] = &responseRow{response: *response}
	return response, nil
}

func (r *ResponseRepository) ListByQuery(ctx context.Context, queryID int64) ([]models.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.Response
	for _, row := range r.items {
		if row.response.QueryID == queryID {
			result = append(result, row.response)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ResponseRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]models.FacultyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.FacultyResponse
	for _, row := range r.items {
		if row.response.FacultyID != facultyID {
			continue
		}
		item := models.FacultyResponse{
			ResponseID: row.response.ID,
			Content:    row.response.Content,
			CreatedAt:  row.response.CreatedAt,
		}
		if r.queries != nil {
			if qrow, ok := r.queries.items[row.response.QueryID]; ok {
				item.QueryTitle = qrow.query.Title
				item.QueryDescription = qrow.query.Description
			}
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ResponseRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ResponseRepository) DeleteByQuery(ctx context.Context, queryID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, row := range r.items {
		if row.response.QueryID == queryID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *ResponseRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *ResponseRepository) CountDistinctQueries(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{})
	for _, row := range r.items {
		seen[row.response.QueryID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (r *ResponseRepository) CountByFaculty(ctx context.Context, facultyID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, row := range r.items {
		if row.response.FacultyID == facultyID {
			n++
		}
	}
	return n, nil
}
