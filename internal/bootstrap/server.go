package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skyjourney/api"
	"skyjourney/config"
)

// NewRouter assembles the gin engine: recovery to generic 500s, session
// identification on every request, role checks per route group.
func NewRouter(mw *api.Auth, authH *api.AuthHandler, flightH *api.FlightHandler, bookingH *api.BookingHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), mw.Identify())

	root := engine.Group("/api")
	authH.Register(root, mw)
	flightH.Register(root.Group("/flights"), mw)
	bookingH.Register(root.Group("/bookings"), mw)

	return engine
}

// Run serves HTTP until the context is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
