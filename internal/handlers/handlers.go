package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BirthdayKeeper/internal/config"
	"BirthdayKeeper/internal/middleware"
	"BirthdayKeeper/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler builds the router and wires all endpoint handlers.
func NewHandler(
	userService *service.UserService,
	birthdayService *service.BirthdayService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	userHandler := NewUserHandler(userService, logger, config)
	birthdayHandler := NewBirthdayHandler(birthdayService, logger)

	// Health probe used by clients to decide whether a sync pass may run.
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/test", userHandler.Status)

	// Birthday sync routes
	r.Get("/api/birthdays", birthdayHandler.List)
	r.Post("/api/birthdays/batch", birthdayHandler.UpsertBatch)
	r.Post("/api/birthdays/delete", birthdayHandler.DeleteBatch)

	return &Handler{Router: r}
}
