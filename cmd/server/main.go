package main

import (
	"net/http"

	"go.uber.org/zap"

	"BirthdayKeeper/internal/config"
	"BirthdayKeeper/internal/handlers"
	"BirthdayKeeper/internal/middleware"
	"BirthdayKeeper/internal/repo"
	"BirthdayKeeper/internal/service"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		_ = logger.Sync()
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB))
	birthdayService := service.NewBirthdayService(repo.NewBirthdayRepository(gormDB))

	h := handlers.NewHandler(userService, birthdayService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow("Starting server",
		"addr", addr,
		"https", cfg.EnableHTTPS,
		"dsn", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
