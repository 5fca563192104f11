package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/staking-ledger/internal/config"
	"github.com/stakelabs-io/staking-ledger/internal/observability/tracing"
	"github.com/stakelabs-io/staking-ledger/internal/services"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the staking service over HTTP.
type Server struct {
	cfg     *config.ApiConfig
	service *services.Service
}

func New(cfg *config.ApiConfig, service *services.Service) *Server {
	return &Server{cfg: cfg, service: service}
}

// Start blocks serving requests until ctx is cancelled, then drains
// in-flight requests within the shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", server.Addr).Msg("Starting API server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestMiddleware)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/deposit", s.handleDeposit)
		r.Post("/withdraw", s.handleWithdraw)
		r.Post("/claim", s.handleClaim)
		r.Post("/emergency-withdraw", s.handleEmergencyWithdraw)

		r.Get("/pool", s.handlePoolStatus)
		r.Get("/stake-info/{account}", s.handleStakeInfo)
		r.Get("/history/{account}", s.handleAccountHistory)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/pause", s.handlePause)
			r.Post("/unpause", s.handleUnpause)
			r.Post("/recover-token", s.handleRecoverToken)
		})
	})

	return r
}

// requestMiddleware injects a trace id into the request context and
// logs each request once it completes.
func requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTraceID(r.Context())
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Ctx(ctx).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}
