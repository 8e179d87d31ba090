package routes

import (
	"net/http"

	"userhub/internal/handlers"
	"userhub/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	loginLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	userHandler *handlers.UserHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	auth.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(authHandler.Login))).Methods("POST")
	auth.Handle("/forgot-password", loginLimiter.Middleware(http.HandlerFunc(passwordHandler.Forgot))).Methods("POST")
	auth.HandleFunc("/reset-password", passwordHandler.Reset).Methods("POST")

	// --- Защищённые сессией ---
	protected := api.PathPrefix("/auth").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))
	protected.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	protected.HandleFunc("/update-password", passwordHandler.Update).Methods("POST")

	// --- CRUD пользователей ---
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/all-user", userHandler.List).Methods("GET")
	users.HandleFunc("/single-user/{id}", userHandler.Get).Methods("GET")
	users.HandleFunc("/create-user", userHandler.Create).Methods("POST")
	users.HandleFunc("/update-user/{id}", userHandler.Update).Methods("PUT")
	users.HandleFunc("/delete-user/{id}", userHandler.Delete).Methods("DELETE")
	users.HandleFunc("/count", userHandler.Count).Methods("GET")
	users.HandleFunc("/exists", userHandler.Exists).Methods("GET")
	users.HandleFunc("/distinct-emails", userHandler.DistinctEmails).Methods("GET")
}
