package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"feedback-survey/internal/config"
	"feedback-survey/internal/database"
	"feedback-survey/internal/logger"
	"feedback-survey/internal/metrics"
	"feedback-survey/internal/notify"
	"feedback-survey/internal/repository"
	"feedback-survey/internal/server"
	"feedback-survey/internal/service"
	"feedback-survey/internal/session"
)

type stores struct {
	users    repository.UserStore
	feedback repository.FeedbackStore
	revoker  repository.SessionRevoker
	closers  []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func main() {
	// Load .env (ignore error in production, env vars are set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		l := logger.New("")
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.AppEnv)
	if cfg.UsesDevSecret() {
		log.Warn().Msg("SESSION_SECRET not set, using the development secret")
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open stores")
	}
	defer st.close()

	sessions := session.NewManager(session.Options{
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
	}, st.revoker)

	handler := server.NewRouter(server.Deps{
		Credentials:    service.NewCredentials(st.users, cfg.BcryptCost),
		Feedback:       service.NewFeedback(st.feedback),
		Sessions:       sessions,
		Notifier:       newNotifier(cfg, log),
		Log:            log,
		RequireAuth:    cfg.RequireAuth,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("driver", cfg.StoreDriver).
			Bool("require_auth", cfg.RequireAuth).
			Msg("feedback server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

func openStores(ctx context.Context, cfg config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		db, err := database.ConnectMongo(connectCtx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, func() {
			dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer dcancel()
			_ = db.Client().Disconnect(dctx)
		})

		userRepo := repository.NewUserRepo(db)
		feedbackRepo := repository.NewFeedbackRepo(db)
		sessionRepo := repository.NewSessionRepo(db)
		if err := userRepo.EnsureIndexes(connectCtx); err != nil {
			log.Warn().Err(err).Msg("failed to create user indexes")
		}
		if err := feedbackRepo.EnsureIndexes(connectCtx); err != nil {
			log.Warn().Err(err).Msg("failed to create feedback indexes")
		}
		if err := sessionRepo.EnsureIndexes(connectCtx); err != nil {
			log.Warn().Err(err).Msg("failed to create session indexes")
		}
		st.users, st.feedback, st.revoker = userRepo, feedbackRepo, sessionRepo

	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(connectCtx, cfg.PGDSN)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, pool.Close)
		if err := database.CreateSchema(connectCtx, pool); err != nil {
			st.close()
			return nil, err
		}
		st.users = repository.NewPostgresUserRepo(pool)
		st.feedback = repository.NewPostgresFeedbackRepo(pool)

	default:
		st.users = repository.NewMemoryUserRepo(nil)
		st.feedback = repository.NewMemoryFeedbackRepo(nil)
	}

	if cfg.RedisURL != "" {
		client, err := database.ConnectRedis(connectCtx, cfg.RedisURL)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = client.Close() })
		st.revoker = repository.NewRedisSessionRepo(client)
	}
	if st.revoker == nil {
		st.revoker = repository.NewMemorySessionRepo()
	}
	return st, nil
}

func newNotifier(cfg config.Config, log zerolog.Logger) notify.Notifier {
	to := notify.SplitRecipients(cfg.Notify.To)
	if cfg.Notify.ResendAPIKey == "" || len(to) == 0 {
		return notify.NewLogNotifier(log.With().Str("component", "notify").Logger())
	}
	log.Info().Strs("to", to).Msg("email notifications enabled")
	return notify.NewResendNotifier(cfg.Notify.ResendAPIKey, cfg.Notify.From, to)
}
