// Package httpapi exposes the forum over HTTP/JSON. Routing uses the
// net/http mux method patterns; every route is wrapped by an access policy
// guard, and the whole mux by the access-log middleware.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"factforum/internal/logging"
	"factforum/internal/server/config"
	"factforum/internal/server/models"
	"factforum/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// HTTPServer is the transport layer: it owns the listener and translates
// between HTTP and the services.
type HTTPServer struct {
	addr      string
	jwtSecret []byte
	logger    logging.Logger
	users     *services.UserService
	forum     *services.ForumService
	srv       *http.Server
}

// NewHTTPServer builds the server and its route table.
func NewHTTPServer(cfg *config.Config, logger logging.Logger, users *services.UserService, forum *services.ForumService) *HTTPServer {
	s := &HTTPServer{
		addr:      cfg.EndpointAddr,
		jwtSecret: []byte(cfg.SecretKey),
		logger:    logger.With("module", "httpapi"),
		users:     users,
		forum:     forum,
	}
	s.srv = &http.Server{Addr: s.addr, Handler: s.withAccessLog(s.routes())}
	return s
}

func (s *HTTPServer) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.guard(RequireNone(), s.handleHealth))

	mux.HandleFunc("POST /auth/register", s.guard(RequireNone(), s.handleRegister))
	mux.HandleFunc("POST /auth/login", s.guard(RequireNone(), s.handleLogin))
	mux.HandleFunc("GET /auth/profile", s.guard(RequireAuthenticated(), s.handleProfile))

	mux.HandleFunc("GET /queries/{$}", s.guard(RequireOptional(), s.handleListQueries))
	mux.HandleFunc("GET /queries/{id}", s.guard(RequireOptional(), s.handleGetQuery))
	mux.HandleFunc("GET /queries/my", s.guard(RequireRole(models.RoleStudent), s.handleMyQueries))
	mux.HandleFunc("POST /queries/new", s.guard(RequireRole(models.RoleStudent), s.handleNewQuery))
	mux.HandleFunc("POST /queries/respond/{id}", s.guard(RequireRole(models.RoleFaculty), s.handleRespond))
	mux.HandleFunc("GET /queries/responses/my", s.guard(RequireRole(models.RoleFaculty), s.handleMyResponses))

	admin := RequireRole(models.RoleAdmin)
	mux.HandleFunc("GET /queries/admin/queries", s.guard(admin, s.handleListQueries))
	mux.HandleFunc("GET /queries/admin/stats", s.guard(admin, s.handleStats))
	mux.HandleFunc("GET /queries/admin/users", s.guard(admin, s.handleListUsers))
	mux.HandleFunc("POST /queries/admin/add_user", s.guard(admin, s.handleAddUser))
	mux.HandleFunc("PATCH /queries/admin/suspend_user/{id}", s.guard(admin, s.handleSuspendUser))
	mux.HandleFunc("PATCH /queries/admin/unsuspend_user/{id}", s.guard(admin, s.handleUnsuspendUser))
	mux.HandleFunc("DELETE /queries/admin/delete_user/{id}", s.guard(admin, s.handleDeleteUser))
	mux.HandleFunc("DELETE /queries/admin/delete_query/{id}", s.guard(admin, s.handleDeleteQuery))
	mux.HandleFunc("DELETE /queries/admin/delete_response/{id}", s.guard(admin, s.handleDeleteResponse))

	mux.HandleFunc("GET /admin/overview", s.guard(admin, s.handleOverview))
	mux.HandleFunc("GET /admin/users", s.guard(admin, s.handleListUsers))
	mux.HandleFunc("PUT /admin/user/{id}/role", s.guard(admin, s.handleChangeRole))
	mux.HandleFunc("DELETE /admin/user/{id}", s.guard(admin, s.handleDeleteUser))

	return mux
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(shutdownCtx, "http server shutting down")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
