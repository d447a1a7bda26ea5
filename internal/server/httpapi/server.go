package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/guidstore/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server owns the echo instance and its lifecycle.
type Server struct {
	address string
	logger  logging.Logger
	echo    *echo.Echo
}

func NewServer(address string, l logging.Logger, service RecordService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	NewHandler(service, l).Register(e)

	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		echo:    e,
	}
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully so in-flight requests can complete.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
