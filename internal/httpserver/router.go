package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"socialbid/internal/config"
	"socialbid/internal/security"
	"socialbid/internal/service"
	"socialbid/internal/store/sqlite"
)

// NewRouter constructs the main HTTP router and wires routes, services, and
// middleware.
func NewRouter(cfg *config.Config, db *sql.DB, tokenSvc *security.TokenService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Repositories
	userRepo := sqlite.NewUserRepo(db)
	auctionRepo := sqlite.NewAuctionRepo(db)
	bidRepo := sqlite.NewBidRepo(db)
	msgRepo := sqlite.NewMessageRepo(db)
	convRepo := sqlite.NewConversationRepo(db)
	logRepo := sqlite.NewPromptLogRepo(db)

	// Services
	authSvc := service.NewAuthService(userRepo, tokenSvc)
	auctionSvc := service.NewAuctionService(auctionRepo, bidRepo, userRepo)
	msgSvc := service.NewMessageService(msgRepo, convRepo, userRepo)
	genSvc := service.NewGenerateService(logRepo)
	adminSvc := service.NewAdminService(userRepo, auctionRepo, bidRepo, logRepo)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		// Auth routes (no auth required)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handleRegister(authSvc))
			r.Post("/login", handleLogin(authSvc))
		})

		// Public marketplace reads
		r.Get("/auctions", handleListAuctions(auctionSvc))
		r.Get("/auctions/{auctionID}", handleGetAuction(auctionSvc))

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokenSvc, userRepo))

			r.Get("/auth/me", handleMe())

			r.Post("/auctions", handleCreateAuction(auctionSvc))
			r.Post("/auctions/{auctionID}/bids", handlePlaceBid(auctionSvc))
			r.Post("/auctions/{auctionID}/watch", handleToggleWatch(auctionSvc))
			r.Patch("/auctions/{auctionID}/status", handleSetAuctionStatus(auctionSvc))

			r.Get("/conversations", handleListConversations(msgSvc))
			r.Get("/conversations/{conversationID}/messages", handleGetMessages(msgSvc))
			r.Post("/messages", handleSendMessage(msgSvc))

			r.Post("/generate", handleGenerate(genSvc))

			r.Route("/admin", func(r chi.Router) {
				r.Get("/users", handleAdminListUsers(adminSvc))
				r.Get("/prompts", handleAdminListPromptLogs(adminSvc))
				r.Get("/stats", handleAdminStats(adminSvc))
			})

			r.Mount("/uploads", UploadRoutes(cfg))
		})
	})

	return r
}
