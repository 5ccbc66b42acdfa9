// Package rest serves the JSON API: registration, login, the session read
// and sign-out used by the navigation, and the navigation model itself.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server/models"
	"github.com/dmitrijs2005/tuktask/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is what the handlers need from services.UserService.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*services.Identity, error)
	SignOut(ctx context.Context, token string) error
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   UserService
	engine  *gin.Engine
}

func NewHTTPServer(address string, l logging.Logger, us UserService) *HTTPServer {
	s := &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
	}
	s.engine = s.newRouter()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
