// Local development backend for the cherries client.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/cherries/internal/sandbox"
	"github.com/limbo/cherries/pkg/cleanup"
	"github.com/limbo/cherries/pkg/config"
	jwtservice "github.com/limbo/cherries/pkg/jwt_service"
	"github.com/limbo/cherries/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New()
	l, err := logger.New(logger.Options{
		Level:      cfg.GetStringOr("LOG_LEVEL", "info"),
		Path:       cfg.GetString("LOG_PATH"),
		MaxSizeMB:  cfg.GetInt("LOG_MAX_SIZE_MB", 10),
		MaxBackups: cfg.GetInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: cfg.GetInt("LOG_MAX_AGE_DAYS", 7),
		Compress:   cfg.GetBool("LOG_COMPRESS", false),
	})
	if err != nil {
		log.Fatal("building logger error: ", err)
	}
	cleanup.Register(&cleanup.Job{Name: "syncing logger", F: func() error {
		_ = l.Sync()
		return nil
	}})

	secret := cfg.GetString("JWT_SECRET")
	if secret == "" {
		l.Fatal("JWT_SECRET is not set")
	}
	serv := sandbox.New(&sandbox.ServicesList{
		Store:      sandbox.NewMemoryStore(time.Now),
		JwtService: jwtservice.New(secret, cfg.GetDuration("JWT_TTL", time.Hour)),
		Logger:     l,
	})
	cleanup.Register(&cleanup.Job{Name: "closing sockets", F: serv.Hub().Close})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cleanup.CleanUp(l)
		os.Exit(0)
	}()

	if err = serv.Run(cfg.GetStringOr("SANDBOX_ADDRESS", ":8000")); err != nil {
		l.Error("server error", zap.Error(err))
	}
	cleanup.CleanUp(l)
}
