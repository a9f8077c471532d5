package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	api "github.com/mind-engage/reasoned/internal/api/http"
	auth "github.com/mind-engage/reasoned/internal/auth/middleware"
	"github.com/mind-engage/reasoned/internal/exam"
	"github.com/mind-engage/reasoned/internal/question"
	"github.com/mind-engage/reasoned/internal/token"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	if cfg.DevSecrets {
		log.Warn("using built-in development secrets; set JWT_SECRET and REASONED_SECRET before exposing this server")
	}

	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.db.Close()

	signer, err := token.NewSigner([]byte(cfg.Token.Secret))
	if err != nil {
		return err
	}
	exams := exam.NewService(question.NewDefaultRegistry(), token.NewService(signer), st.accounts,
		exam.WithTTL(cfg.Token.TTL),
		exam.WithFreeLimit(cfg.Quota.FreeLimit),
		exam.WithSetSize(cfg.Set.MinSize, cfg.Set.MaxSize, cfg.Set.DefaultSize),
		exam.WithLogger(log.Named("exam")),
	)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Deps{
			Exams:       exams,
			Accounts:    st.accounts,
			Materials:   st.materials,
			Auth:        auth.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
			Log:         log.Named("http"),
			CORSOrigins: cfg.CORS.Origins,
			Ready:       st.db.PingContext,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr),
			zap.String("mode", string(cfg.Mode)), zap.String("db", cfg.DB.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
