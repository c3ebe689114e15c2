package httpapi

import (
	"net/http"
)

func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.forum.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(stats))
}

func (s *HTTPServer) handleOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := s.forum.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overviewDTO{
		TotalUsers:      stats.TotalAccounts,
		TotalQueries:    stats.TotalQueries,
		AnsweredQueries: stats.AnsweredByFlag,
		PendingQueries:  stats.PendingByFlag,
	})
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.ListAccounts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTOs(list))
}

func (s *HTTPServer) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	account, err := s.users.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdUserResponse{
		Message: "user created successfully",
		User:    account.Username,
	})
}

func (s *HTTPServer) handleSuspendUser(w http.ResponseWriter, r *http.Request) {
	s.setUserActive(w, r, false, "user suspended")
}

func (s *HTTPServer) handleUnsuspendUser(w http.ResponseWriter, r *http.Request) {
	s.setUserActive(w, r, true, "user unsuspended")
}

func (s *HTTPServer) setUserActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.users.SetActive(r.Context(), id, active); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (s *HTTPServer) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.users.SetRole(r.Context(), id, req.Role); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "user role updated"})
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.users.DeleteAccount(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "user deleted"})
}

func (s *HTTPServer) handleDeleteQuery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.forum.DeleteQuery(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "query deleted"})
}

func (s *HTTPServer) handleDeleteResponse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.forum.DeleteResponse(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "response deleted"})
}
