package httpapi

import (
	"net/http"
	"strconv"

	"factforum/internal/common"
)

// pathID parses the {id} segment. Non-numeric ids behave like unknown
// resources rather than bad requests.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *HTTPServer) handleListQueries(w http.ResponseWriter, r *http.Request) {
	list, err := s.forum.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQueryDTOs(list))
}

func (s *HTTPServer) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	projection, err := s.forum.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQueryDTO(*projection))
}

func (s *HTTPServer) handleMyQueries(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthenticated)
		return
	}

	list, err := s.forum.ListMine(r.Context(), identity.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQueryDTOs(list))
}

func (s *HTTPServer) handleNewQuery(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthenticated)
		return
	}

	var req newQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	query, err := s.forum.CreateQuery(r.Context(), identity.Username, req.Title, req.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdQueryResponse{
		Message: "query created successfully",
		QueryID: query.ID,
	})
}

func (s *HTTPServer) handleRespond(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthenticated)
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	response, err := s.forum.Respond(r.Context(), identity.Username, id, req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponseResponse{
		Message:    "response submitted successfully",
		ResponseID: response.ID,
	})
}

func (s *HTTPServer) handleMyResponses(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthenticated)
		return
	}

	list, err := s.forum.ListFacultyResponses(r.Context(), identity.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFacultyResponseDTOs(list))
}
