package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	handlers "server/src/api/handlers"
	"server/src/config"
	"server/src/utils"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
	Port    string
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
		Port:    cfg.Service.Port,
	}
	server.Router.Use(loggerMiddleware(logger))
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/analytics", func(r chi.Router) {
		r.Post("/report", s.Handler.GenerateAnalyticsReport)
		r.Post("/projections", s.Handler.GenerateProjections)
	})

	s.Router.Get("/api/rates/{region}", s.Handler.GetRegionRates)
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}

// loggerMiddleware scopes the shared logger into every request context so
// services can log through utils.LoggerFromContext.
func loggerMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), logger)))
		})
	}
}
