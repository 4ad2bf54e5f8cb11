package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bidhaus/bidhaus-backend/api/controllers"
	"github.com/bidhaus/bidhaus-backend/api/middleware"
	authsvc "github.com/bidhaus/bidhaus-backend/internal/auth"
	auctionsvc "github.com/bidhaus/bidhaus-backend/internal/auctions"
	paymentsvc "github.com/bidhaus/bidhaus-backend/internal/payments"
	"github.com/bidhaus/bidhaus-backend/pkg/auth/session"
	"github.com/bidhaus/bidhaus-backend/pkg/config"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	"github.com/bidhaus/bidhaus-backend/pkg/logger"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	SessionChecker session.AccessSessionChecker
	AuthService    authsvc.Service
	AuctionService auctionsvc.Service
	PaymentService paymentsvc.Service
	DBPinger       controllers.Pinger
	RedisPinger    controllers.Pinger
}

// NewRouter assembles the chi router with the full middleware chain.
func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": params.DBPinger,
			"redis":    params.RedisPinger,
		}))
	})

	authn := middleware.Auth(cfg.JWT, params.SessionChecker, logg)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", controllers.RegisterUser(params.AuthService, logg))
		r.Post("/login", controllers.LoginUser(params.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/profile", controllers.GetProfile(params.AuthService, logg))
			r.Put("/profile", controllers.UpdateProfile(params.AuthService, logg))
		})
	})

	r.Route("/api/v1/auctions", func(r chi.Router) {
		r.Get("/", controllers.ListAuctions(params.AuctionService, logg))
		r.Get("/{auctionId}", controllers.GetAuction(params.AuctionService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/", controllers.CreateAuction(params.AuctionService, logg))
			r.Put("/{auctionId}", controllers.UpdateAuction(params.AuctionService, logg))
			r.Delete("/{auctionId}", controllers.DeleteAuction(params.AuctionService, logg))
		})
	})

	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Use(authn)
		r.Post("/create-payment", controllers.CreatePayment(params.PaymentService, logg))
		r.Post("/confirm", controllers.ConfirmPayment(params.PaymentService, logg))
		r.Get("/transactions", controllers.ListTransactions(params.PaymentService, logg))
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(authn, middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Get("/transactions", controllers.AdminListTransactions(params.PaymentService, logg))
	})

	return r
}
