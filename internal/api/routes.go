package api

import (
	"net/http"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/handler"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/logger"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/middleware"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/check", handler.CheckUser).Methods(http.MethodPost)
	r.HandleFunc("/auth/reset-password", handler.ResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/auth/x-login", handler.XLogin).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Predictions
	authenticatedRoutes.HandleFunc("/predictions", handler.SubmitPrediction).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/predictions", handler.UpdatePrediction).Methods(http.MethodPut)
	r.HandleFunc("/predictions", handler.GetPredictions).Methods(http.MethodGet)
	r.HandleFunc("/predictions/all", handler.GetAllPredictions).Methods(http.MethodGet)
	r.HandleFunc("/predictions/{id}/revisions", handler.GetPredictionRevisions).Methods(http.MethodGet)

	// Settlement et maintenance
	r.HandleFunc("/predictions/calculate-scores", handler.CalculateScores).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/predictions/reset", handler.ResetPredictions).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/predictions/cleanup", handler.CleanupPredictions).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/predictions/debug", handler.DebugPredictions).Methods(http.MethodGet)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)

	// Stock
	r.HandleFunc("/stock", handler.GetStockPrice).Methods(http.MethodGet)
	r.HandleFunc("/stock/weekly", handler.GetWeeklyStockData).Methods(http.MethodGet)

	// Insights
	r.HandleFunc("/insights", handler.GetInsights).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/insights/refresh", handler.RefreshInsights).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/users", handler.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warning("404 Not Found: %s %s", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
