package httpapi

import (
	"net/http"

	"factforum/internal/common"
)

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.users.Register(r.Context(), req.Username, req.Password, req.Role); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "user registered successfully"})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.users.Authenticate(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   result.Token,
		Role:    result.Account.Role.String(),
	})
}

func (s *HTTPServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthenticated)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Message: "profile",
		User:    identity.Username,
		Role:    identity.Role.String(),
	})
}
