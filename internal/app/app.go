package app

import (
	"net/http"
	"strings"
	"time"

	"ecowaste/internal/config"
	"ecowaste/internal/middleware"
	"ecowaste/internal/modules/admin"
	"ecowaste/internal/modules/auth"
	"ecowaste/internal/modules/complaint"
	"ecowaste/internal/modules/fleet"
	"ecowaste/internal/modules/payment"
	"ecowaste/internal/modules/pickup"
	"ecowaste/internal/modules/tracking"
	"ecowaste/internal/modules/wallet"
	jwtsvc "ecowaste/internal/pkg/jwt"
	"ecowaste/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options override collaborators, mainly for tests.
type Options struct {
	// Gateway replaces the Razorpay client. When nil one is built from cfg.Razorpay.
	Gateway payment.Gateway
	Loggerf func(format string, args ...interface{})
}

// App is the wired HTTP API.
type App struct {
	Router *gin.Engine
	Hub    *tracking.Hub
	JWT    *jwtsvc.Service
}

// New builds every module on top of db and mounts their routes.
func New(cfg *config.RuntimeConfig, db *gorm.DB, opts Options) *App {
	loggerf := opts.Loggerf
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}

	accountRepo := repository.NewAccountRepository(db)
	pickupRepo := repository.NewPickupRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	reportRepo := repository.NewReportRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := tracking.NewHub(loggerf)

	gateway := opts.Gateway
	if gateway == nil && cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		gateway = payment.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	}

	authHandler := auth.NewHandler(
		auth.NewService(accountRepo, j, loggerf),
		auth.CookieOptions{
			Secure:   cfg.CookieSecure,
			SameSite: cfg.SameSite(),
			Path:     cfg.CookiePath,
			MaxAge:   cfg.JWTTTL,
		},
	)
	pickupHandler := pickup.NewHandler(pickup.NewService(
		pickupRepo, workerRepo, vehicleRepo,
		pickup.NewCalculator(cfg.Pricing),
		pickup.Options{
			ReverseCreditOnCancel: cfg.Pricing.ReverseCreditOnCancel,
			Events:                hub,
			Loggerf:               loggerf,
		},
	))
	paymentHandler := payment.NewHandler(payment.NewService(pickupRepo, gateway, cfg.Razorpay, hub, loggerf))
	complaintHandler := complaint.NewHandler(complaint.NewService(complaintRepo, loggerf))
	fleetHandler := fleet.NewHandler(fleet.NewService(workerRepo, vehicleRepo, loggerf))
	adminHandler := admin.NewHandler(admin.NewService(accountRepo, reportRepo, loggerf))
	walletHandler := wallet.NewHandler(wallet.NewService(accountRepo, ledgerRepo))
	trackingHandler := tracking.NewHandler(hub, j, allowedOrigins(cfg.CORSOrigins))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	trackingHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			walletHandler.RegisterRoutes(protected)
			pickupHandler.RegisterUserRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			complaintHandler.RegisterUserRoutes(protected)
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
			pickupHandler.RegisterAdminRoutes(adminGroup)
			complaintHandler.RegisterAdminRoutes(adminGroup)
			fleetHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	return &App{Router: r, Hub: hub, JWT: j}
}

// allowedOrigins is empty in dev so the tracking socket accepts any origin.
func allowedOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
