package app

import (
	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/handlers"
	"userhub/internal/middleware"
	"userhub/internal/repository"
	"userhub/internal/routes"
	"userhub/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	if err := db.RunMigrations(cfg.GetDSN()); err != nil {
		return nil, err
	}

	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)

	// Доставка токенов сброса: почтой, если SMTP настроен, иначе заглушка
	var delivery services.ResetDelivery
	if cfg.SMTPHost != "" && cfg.SMTPUser != "" {
		delivery = services.NewQueuedDelivery(services.NewEmailService(cfg), 3)
	} else {
		delivery = services.NopDelivery{}
	}

	// Сервисы
	resetTokens := services.NewResetTokenStore(cfg.ResetTTL())
	authService := services.NewAuthService(userRepo, resetTokens, delivery, cfg.JWTSecret, cfg.SessionTTL())
	userService := services.NewUserService(userRepo)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	passwordHandler := handlers.NewPasswordHandler(authService)
	userHandler := handlers.NewUserHandler(userService)

	// Лимитер на credential-эндпоинты: 10 попыток в минуту с одного IP
	loginLimiter := middleware.NewRateLimiter(10)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret, loginLimiter, authHandler, passwordHandler, userHandler)

	return router, nil
}
