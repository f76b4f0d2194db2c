// Command cherries is a terminal client for the quests backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/limbo/cherries/internal/api"
	"github.com/limbo/cherries/internal/live"
	"github.com/limbo/cherries/internal/repository"
	"github.com/limbo/cherries/internal/service"
	"github.com/limbo/cherries/pkg/cleanup"
	"github.com/limbo/cherries/pkg/config"
	"github.com/limbo/cherries/pkg/logger"
	"go.uber.org/zap"
)

func init() {
	service.InitValidator()
}

type flags struct {
	cmd        string
	email      string
	username   string
	password   string
	quest      string
	task       string
	date       string
	name       string
	start      string
	end        string
	tasks      string
	code       string
	avatarType string
	avatar     string
}

func main() {
	var f flags
	flag.StringVar(&f.cmd, "cmd", "whoami", "login|signup|logout|whoami|profile|delete-account|quests|create|join|delete|checkin|uncheck|toggle|stats|watch")
	flag.StringVar(&f.email, "email", "", "account email")
	flag.StringVar(&f.username, "username", "", "account username (signup, profile)")
	flag.StringVar(&f.password, "password", "", "account password")
	flag.StringVar(&f.quest, "quest", "", "quest id")
	flag.StringVar(&f.task, "task", "", "daily task id")
	flag.StringVar(&f.date, "date", "", "day as yyyy-mm-dd, today when empty")
	flag.StringVar(&f.name, "name", "", "quest name (create)")
	flag.StringVar(&f.start, "start", "", "quest start yyyy-mm-dd (create)")
	flag.StringVar(&f.end, "end", "", "quest end yyyy-mm-dd (create)")
	flag.StringVar(&f.tasks, "tasks", "", "daily tasks as title:points,title:points (create)")
	flag.StringVar(&f.code, "code", "", "share code (join)")
	flag.StringVar(&f.avatarType, "avatar-type", "", "emoji|preset|custom (profile)")
	flag.StringVar(&f.avatar, "avatar", "", "avatar value (profile)")
	flag.Parse()

	cfg := config.New()
	l, err := logger.New(logger.Options{
		Level:         cfg.GetStringOr("LOG_LEVEL", "warn"),
		Path:          cfg.GetString("LOG_PATH"),
		MaxSizeMB:     cfg.GetInt("LOG_MAX_SIZE_MB", 10),
		MaxBackups:    cfg.GetInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays:    cfg.GetInt("LOG_MAX_AGE_DAYS", 7),
		Compress:      cfg.GetBool("LOG_COMPRESS", false),
		DisableStderr: cfg.GetString("LOG_PATH") != "",
	})
	if err != nil {
		log.Fatal("building logger error: ", err)
	}
	cleanup.Register(&cleanup.Job{Name: "syncing logger", F: func() error {
		_ = l.Sync()
		return nil
	}})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a, err := newApp(ctx, cfg, l)
	if err == nil {
		err = a.run(ctx, &f)
	}
	stop()
	cleanup.CleanUp(l)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	session    *service.SessionManager
	quests     *service.QuestService
	checkIns   *service.CheckInService
	profile    *service.ProfileService
	httpClient *http.Client
	wsURL      string
	logger     *zap.Logger
}

func newApp(ctx context.Context, cfg *config.Config, l *zap.Logger) (*app, error) {
	apiURL := cfg.GetStringOr("CHERRIES_API_URL", "http://localhost:8000")
	store, err := sessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	httpClient := http.DefaultClient
	sm := service.NewSessionManager(ctx, api.NewAuthClient(apiURL, httpClient, l), store, service.WithLogger(l))
	client := api.New(&api.ClientConfig{
		BaseURL:    apiURL,
		HTTPClient: httpClient,
		Auth:       sm,
		Logger:     l,
	})
	return &app{
		session:    sm,
		quests:     service.NewQuestService(client),
		checkIns:   service.NewCheckInService(client),
		profile:    service.NewProfileService(client, sm),
		httpClient: httpClient,
		wsURL:      cfg.GetStringOr("CHERRIES_WS_URL", apiURL),
		logger:     l,
	}, nil
}

func sessionStore(ctx context.Context, cfg *config.Config) (repository.SessionStoreI, error) {
	profile := cfg.GetStringOr("CHERRIES_SESSION_PROFILE", "default")
	switch kind := cfg.GetStringOr("CHERRIES_SESSION_STORE", "file"); kind {
	case "file":
		path := cfg.GetString("CHERRIES_SESSION_FILE")
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, errors.New("resolving config dir error: " + err.Error())
			}
			path = filepath.Join(dir, "cherries", profile+".json")
		}
		return repository.NewFileSessionStore(path), nil
	case "postgres":
		return repository.NewPgSessionStore(ctx, &repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		}, profile)
	case "redis":
		return repository.NewRedisSessionStore(ctx, &repository.RedisCfg{
			Address:  cfg.GetStringOr("REDIS_ADDRESS", "localhost:6379"),
			Password: cfg.GetString("REDIS_PASSWORD"),
			DB:       cfg.GetInt("REDIS_DB", 0),
		}, profile)
	default:
		return nil, errors.New("unknown session store: " + kind)
	}
}

func (a *app) listener(onUpdate func(questID string)) (*live.Listener, error) {
	return live.New(a.wsURL, a.session, onUpdate, live.WithLogger(a.logger))
}
