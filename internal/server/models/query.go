package models

import "time"

// Query is a student's question. Answered is monotonic: it flips to true when
// the first response arrives and is never reset, even if every response is
// later deleted.
type Query struct {
	ID          int64
	Title       string
	Description string
	StudentID   int64
	CreatedAt   time.Time
	Answered    bool
}

// QueryProjection is the read shape returned to callers: the query plus its
// responses ordered by creation time.
type QueryProjection struct {
	Query
	Responses []Response
}
