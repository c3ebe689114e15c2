package httpapi

import (
	"time"

	"factforum/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type newQueryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type respondRequest struct {
	Content string `json:"content"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

type profileResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
	Role    string `json:"role"`
}

type createdQueryResponse struct {
	Message string `json:"message"`
	QueryID int64  `json:"query_id"`
}

type createdResponseResponse struct {
	Message    string `json:"message"`
	ResponseID int64  `json:"response_id"`
}

type createdUserResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

type responseDTO struct {
	ID        int64     `json:"id"`
	FacultyID int64     `json:"faculty_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type queryDTO struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StudentID   int64         `json:"student_id"`
	CreatedAt   time.Time     `json:"created_at"`
	Answered    bool          `json:"answered"`
	Responses   []responseDTO `json:"responses"`
}

type facultyResponseDTO struct {
	ResponseID       int64     `json:"response_id"`
	Content          string    `json:"content"`
	QueryTitle       string    `json:"query_title"`
	QueryDescription string    `json:"query_description"`
	CreatedAt        time.Time `json:"created_at"`
}

type accountDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type statsDTO struct {
	TotalAccounts  int64 `json:"total_accounts"`
	Students       int64 `json:"students"`
	Faculty        int64 `json:"faculty"`
	Admins         int64 `json:"admins"`
	TotalQueries   int64 `json:"total_queries"`
	TotalResponses int64 `json:"total_responses"`

	AnsweredByFlag             int64 `json:"answered_by_flag"`
	AnsweredByResponsePresence int64 `json:"answered_by_response_presence"`
	PendingByFlag              int64 `json:"pending_by_flag"`
	PendingByResponsePresence  int64 `json:"pending_by_response_presence"`
}

// overviewDTO is the condensed admin dashboard; answered here follows the
// queries.answered flag.
type overviewDTO struct {
	TotalUsers      int64 `json:"total_users"`
	TotalQueries    int64 `json:"total_queries"`
	AnsweredQueries int64 `json:"answered_queries"`
	PendingQueries  int64 `json:"pending_queries"`
}

func toResponseDTO(r models.Response) responseDTO {
	return responseDTO{
		ID:        r.ID,
		FacultyID: r.FacultyID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

func toQueryDTO(p models.QueryProjection) queryDTO {
	responses := make([]responseDTO, 0, len(p.Responses))
	for _, r := range p.Responses {
		responses = append(responses, toResponseDTO(r))
	}
	return queryDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		StudentID:   p.StudentID,
		CreatedAt:   p.CreatedAt,
		Answered:    p.Answered,
		Responses:   responses,
	}
}

func toQueryDTOs(list []models.QueryProjection) []queryDTO {
	result := make([]queryDTO, 0, len(list))
	for _, p := range list {
		result = append(result, toQueryDTO(p))
	}
	return result
}

func toFacultyResponseDTOs(list []models.FacultyResponse) []facultyResponseDTO {
	result := make([]facultyResponseDTO, 0, len(list))
	for _, r := range list {
		result = append(result, facultyResponseDTO{
			ResponseID:       r.ResponseID,
			Content:          r.Content,
			QueryTitle:       r.QueryTitle,
			QueryDescription: r.QueryDescription,
			CreatedAt:        r.CreatedAt,
		})
	}
	return result
}

func toAccountDTOs(list []*models.Account) []accountDTO {
	result := make([]accountDTO, 0, len(list))
	for _, a := range list {
		result = append(result, accountDTO{
			ID:       a.ID,
			Username: a.Username,
			Role:     a.Role.String(),
			Active:   a.Active,
		})
	}
	return result
}

func toStatsDTO(s *models.Stats) statsDTO {
	return statsDTO{
		TotalAccounts:              s.TotalAccounts,
		Students:                   s.Students,
		Faculty:                    s.Faculty,
		Admins:                     s.Admins,
		TotalQueries:               s.TotalQueries,
		TotalResponses:             s.TotalResponses,
		AnsweredByFlag:             s.AnsweredByFlag,
		AnsweredByResponsePresence: s.AnsweredByResponsePresence,
		PendingByFlag:              s.PendingByFlag,
		PendingByResponsePresence:  s.PendingByResponsePresence,
	}
}
