package routes

import (
	"github.com/Dosada05/fitness-challenge/handlers"
	"github.com/Dosada05/fitness-challenge/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Team        *handlers.TeamHandler
	Sport       *handlers.SportHandler
	Performance *handlers.PerformanceHandler
	Analytics   *handlers.AnalyticsHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	// Public
	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/sports", h.Sport.List)
	router.Get("/sports/{id}", h.Sport.Get)

	router.Get("/teams", h.Team.List)
	router.Get("/teams/{id}", h.Team.Get)

	router.Route("/analytics", func(r chi.Router) {
		r.Get("/leaderboard", h.Analytics.Leaderboard)
		r.Get("/teams", h.Analytics.TeamLeaderboard)
		r.Get("/teams/{id}/total", h.Analytics.TeamTotal)
		r.Get("/sports/{id}/leaderboard", h.Analytics.SportLeaderboard)
		r.Get("/demographics", h.Analytics.Demographics)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me/total", h.Analytics.MyTotal)
			r.Get("/me/weekly", h.Analytics.MyWeeklyProgress)
		})
	})

	// Live activity feed
	router.Get("/ws/feed", h.WebSocket.Feed)

	// Authenticated
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/users/me", h.User.Me)
		r.Put("/users/me", h.User.UpdateMe)
		r.Put("/users/me/avatar", h.User.UploadAvatar)

		r.Post("/teams", h.Team.Create)
		r.Post("/teams/{id}/join", h.Team.Join)
		r.Post("/teams/leave", h.Team.Leave)

		r.Post("/performances", h.Performance.Record)
		r.Get("/performances", h.Performance.History)

		r.Get("/dashboard", h.Dashboard.Me)
	})
}
