package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/cogniwise/cogniwise/internal/assessment"
	"github.com/cogniwise/cogniwise/internal/auth"
	"github.com/cogniwise/cogniwise/internal/chat"
	"github.com/cogniwise/cogniwise/internal/config"
	"github.com/cogniwise/cogniwise/internal/llm"
	"github.com/cogniwise/cogniwise/internal/logger"
	"github.com/cogniwise/cogniwise/internal/observability"
	"github.com/cogniwise/cogniwise/internal/server"
	"github.com/cogniwise/cogniwise/internal/store"
	"github.com/cogniwise/cogniwise/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdownTracing, err := observability.Init(ctx, log, cfg.OTel)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(sctx); err != nil {
				log.Warn("tracing shutdown failed", "error", err)
			}
		}()

		var opts []store.Option
		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			defer rdb.Close()
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
			}
			opts = append(opts, store.WithLocker(store.NewRedisLocker(rdb, 10*time.Second, log.Zap())))
			log.Info("using redis subject locks", "addr", cfg.RedisAddr)
		}

		st, err := openStore(cmd, opts...)
		if err != nil {
			return err
		}
		defer st.Close()

		// A missing provider keeps the service up; chat answers 500 until
		// a key is configured.
		var provider llm.Provider
		if p, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log.Zap()); err != nil {
			log.Warn("chat disabled", "error", err)
		} else {
			provider = p
			log.Info("chat provider ready", "provider", cfg.LLM.Provider)
		}

		authSvc, err := auth.New(cfg.Auth)
		if err != nil {
			return fmt.Errorf("init auth: %w", err)
		}
		if cfg.Auth.Secret == config.DefaultSecret {
			log.Warn("SECRET_KEY not set, using the development default")
		}

		srv := server.New(":"+cfg.Port, server.Deps{
			Assessments: assessment.NewService(st, telemetry.NewGenerator(nil), log.Zap()),
			Chat:        chat.NewService(st.Chat(), provider, log.Zap()),
			Auth:        authSvc,
			DB:          st,
			Log:         log,
			CORSOrigins: cfg.CORSOrigins,
			ServiceName: cfg.OTel.ServiceName,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Listen port (overrides PORT)")
}
