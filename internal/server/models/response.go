package models

import "time"

// Response is a faculty answer attached to a query. A query may hold any
// number of responses.
type Response struct {
	ID        int64
	QueryID   int64
	FacultyID int64
	Content   string
	CreatedAt time.Time
}

// FacultyResponse is the "my responses" read shape: a response joined with
// the title and description of the query it answers.
type FacultyResponse struct {
	ResponseID       int64
	Content          string
	QueryTitle       string
	QueryDescription string
	CreatedAt        time.Time
}
