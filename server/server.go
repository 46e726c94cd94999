// Package server provides an HTTP REST server that normalizes context-free
// grammars on request and stores them on behalf of its users.
//
// Endpoints, all under /api/v1:
//
//	POST   /login                  - accepts user and password and returns a jwt.
//	DELETE /login/{id}             - ends user authentication session and invalidates the jwt.
//	POST   /tokens                 - refreshes the token without requiring credentials (requires auth)
//	POST   /users                  - create a new user account (admin auth required)
//	GET    /users                  - get all users (admin auth required)
//	GET    /users/{id}             - get info on a user (auth required)
//	DELETE /users/{id}             - delete a user and their grammars (auth required)
//	GET    /info                   - get version info on the server.
//	POST   /normalize              - normalize a grammar without storing it.
//	POST   /grammars               - store a new grammar (auth required)
//	GET    /grammars               - get stored grammars (auth required)
//	GET    /grammars/{id}          - get a stored grammar (auth required)
//	DELETE /grammars/{id}          - delete a stored grammar (auth required)
//	POST   /grammars/{id}/cnf      - normalize a stored grammar and keep the result (auth required)
//	POST   /grammars/{id}/accepts  - check input against a stored grammar (auth required)
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/chomsky/server/api"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/gramsvc"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/go-chi/chi/v5"
)

// Server is an HTTP REST server that provides grammar normalization and
// associated resources. The zero-value of a Server should not be used
// directly; call New() to get one ready for use.
type Server struct {
	router chi.Router
	db     dao.Store
	api    api.API
	listen string
}

// New creates a new Server from cfg. Unset values in cfg are given their
// defaults before it is validated.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		db:     db,
		listen: cfg.ListenAddress,
		api: api.API{
			Backend:     gramsvc.Service{DB: db},
			UnauthDelay: cfg.UnauthDelay(),
			Secret:      cfg.TokenSecret,
		},
	}
	srv.router = newRouter(srv.api)

	return srv, nil
}

// Service returns the backend service of the server for direct use.
func (srv *Server) Service() gramsvc.Service {
	return srv.api.Backend
}

// ServeHTTP makes Server an http.Handler.
func (srv *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	srv.router.ServeHTTP(w, req)
}

// EnsureAdmin creates a user with the admin role and the given credentials if
// there is not already a user with that username. It returns whether a user
// was created.
func (srv *Server) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := srv.Service().CreateUser(ctx, username, password, "", dao.Admin)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ServeForever begins listening on the configured address for HTTP REST
// client requests. It only returns if the server cannot listen or fails.
func (srv *Server) ServeForever() error {
	log.Printf("INFO  Listening on %s", srv.listen)
	return http.ListenAndServe(srv.listen, srv)
}

// Close closes the connection to persistence.
func (srv *Server) Close() error {
	return srv.db.Close()
}
