// Package sandbox is an in-memory backend speaking the quests HTTP and
// WebSocket contract. It backs end-to-end tests and local development.
package sandbox

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	jwtservice "github.com/limbo/cherries/pkg/jwt_service"
	"github.com/limbo/cherries/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	mx         *chi.Mux
	store      StoreI
	jwtService *jwtservice.JWTService
	hub        *Hub
	metrics    *metrics
	registry   *prometheus.Registry
	logger     *zap.Logger
	bcryptCost int
}

type ServicesList struct {
	Store      StoreI
	JwtService *jwtservice.JWTService
	Logger     *zap.Logger
	// Zero means bcrypt.DefaultCost
	BcryptCost int
}

func New(servicesOptions *ServicesList) *Server {
	cost := servicesOptions.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	registry := prometheus.NewRegistry()
	s := &Server{
		mx:         chi.NewMux(),
		store:      servicesOptions.Store,
		jwtService: servicesOptions.JwtService,
		registry:   registry,
		metrics:    newMetrics(registry),
		logger:     logger.OrNop(servicesOptions.Logger),
		bcryptCost: cost,
	}
	s.hub = newHub(s.logger, s.metrics.sockets)
	s.MountEndpoints()
	return s
}

func (s *Server) MountEndpoints() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Get("/ws/quests/{id}", s.ServeQuestSocket)
	s.mx.Group(func(r chi.Router) {
		r.Use(s.MetricsMiddleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
			r.Post("/refresh", s.Refresh)
			r.Group(func(r chi.Router) {
				r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
				r.Post("/logout", s.Logout)
				r.Delete("/account", s.DeleteAccount)
			})
		})
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/quests", s.GetQuests)
			r.Post("/quests", s.CreateQuest)
			r.Post("/quests/join", s.JoinQuest)
			r.Delete("/quests/{id}", s.DeleteQuest)
			r.Post("/checkins/increment", s.IncrementCheckIn)
			r.Post("/checkins/decrement", s.DecrementCheckIn)
			r.Get("/checkins/quest/{id}", s.GetCheckIns)
			r.Get("/checkins/stats/{id}", s.GetStats)
			r.Patch("/profile", s.UpdateProfile)
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Hub exposes the broadcaster, e.g. for pushing updates from tools.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Run(address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}
	s.logger.Info("sandbox backend listening", zap.String("address", address))
	return srv.ListenAndServe()
}
