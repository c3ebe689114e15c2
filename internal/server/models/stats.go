package models

// Stats aggregates admin dashboard counters.
//
// "Answered" is counted two ways on purpose. AnsweredByFlag trusts the
// queries.answered column; AnsweredByResponsePresence counts distinct query
// ids referenced by at least one response. The two diverge once a query's
// only response is deleted, because the flag is never reset. Consumers may
// depend on either, so both are kept under separate names.
type Stats struct {
	TotalAccounts  int64
	Students       int64
	Faculty        int64
	Admins         int64
	TotalQueries   int64
	TotalResponses int64

	AnsweredByFlag             int64
	AnsweredByResponsePresence int64
	PendingByFlag              int64
	PendingByResponsePresence  int64
}
