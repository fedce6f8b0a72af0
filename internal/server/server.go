package server

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/kluaihom/banana-market-backend/internal/ai"
	"github.com/kluaihom/banana-market-backend/internal/handler"
	appmw "github.com/kluaihom/banana-market-backend/internal/middleware"
	"github.com/kluaihom/banana-market-backend/internal/repository"
	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/kluaihom/banana-market-backend/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e     *echo.Echo
	repos []interface{ SetDB(*gorm.DB) }
	sha   string
	build string
}

func New(db *gorm.DB, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	productRepo := repository.NewProductRepository(db)
	reservationRepo := repository.NewReservationRepository(db, productRepo)
	orderRepo := repository.NewOrderRepository(db, productRepo)
	reviewRepo := repository.NewReviewRepository(db)
	farmRepo := repository.NewFarmRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	cultivarRepo := repository.NewCultivarRepository(db)

	productSvc := service.NewProductService(productRepo, orderRepo, reservationRepo, farmRepo)
	reservationSvc := service.NewReservationService(reservationRepo, orderRepo, productRepo, farmRepo, profileRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, farmRepo)
	reviewSvc := service.NewReviewService(reviewRepo, orderRepo)
	farmSvc := service.NewFarmService(farmRepo, productRepo, reservationRepo, orderRepo, profileRepo)
	profileSvc := service.NewProfileService(profileRepo)
	cultivarSvc := service.NewCultivarService(cultivarRepo)

	productHandler := handler.NewProductHandler(productSvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	farmHandler := handler.NewFarmHandler(farmSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	cultivarHandler := handler.NewCultivarHandler(cultivarSvc)
	detectHandler := handler.NewDetectHandler(ai.NewDetectClient(os.Getenv("GEMINI_DETECT_MODEL")), cultivarSvc)
	uploadHandler := handler.NewUploadHandler(storage.NewUploader(os.Getenv("STORAGE_BUCKET")), farmSvc)

	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		e.Logger.Fatalf("failed to init firebase auth: %v", err)
	}

	// Browsing with a valid token counts as presence; the write is
	// fire-and-forget and must never slow the page.
	presence := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid, _ := c.Get("uid").(string); uid != "" {
				go profileSvc.Heartbeat(context.Background(), uid)
			}
			return next(c)
		}
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	// public, with optional presence piggyback
	api.GET("/products", productHandler.List, authMw.OptionalAuth, presence)
	api.GET("/products/:id", productHandler.Get, authMw.OptionalAuth, presence)
	api.GET("/farms/:id/public", farmHandler.GetPublic, authMw.OptionalAuth, presence)
	api.GET("/farms/:id/reviews", reviewHandler.ListByFarm)
	api.GET("/cultivars", cultivarHandler.List)
	api.GET("/cultivars/:slug", cultivarHandler.GetBySlug)

	// authenticated
	api.POST("/products", productHandler.Create, authMw.RequireAuth)
	api.PUT("/products/:id", productHandler.Update, authMw.RequireAuth)
	api.DELETE("/products/:id", productHandler.Delete, authMw.RequireAuth)
	api.POST("/products/:id/toggle-active", productHandler.ToggleActive, authMw.RequireAuth)
	api.POST("/products/:id/reserve", reservationHandler.Reserve, authMw.RequireAuth)
	api.GET("/me/products", productHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/reservations", reservationHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/orders", orderHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/profile", profileHandler.GetMe, authMw.RequireAuth)
	api.PUT("/me/profile", profileHandler.UpdateMe, authMw.RequireAuth)
	api.POST("/me/presence", profileHandler.Heartbeat, authMw.RequireAuth)
	api.POST("/me/upgrade-to-farm", farmHandler.UpgradeToFarm, authMw.RequireAuth)
	api.GET("/me/farm", farmHandler.GetMine, authMw.RequireAuth)
	api.PUT("/me/farm", farmHandler.UpdateMine, authMw.RequireAuth)
	api.GET("/farm/reservations", reservationHandler.ListFarmPending, authMw.RequireAuth)
	api.GET("/farm/orders", orderHandler.ListFarm, authMw.RequireAuth)
	api.GET("/farm/dashboard", farmHandler.DashboardStats, authMw.RequireAuth)
	api.POST("/reservations/:id/confirm", reservationHandler.Confirm, authMw.RequireAuth)
	api.POST("/reservations/:id/cancel", reservationHandler.Cancel, authMw.RequireAuth)
	api.POST("/orders/:id/ship", orderHandler.Ship, authMw.RequireAuth)
	api.POST("/orders/:id/deliver", orderHandler.ConfirmDelivery, authMw.RequireAuth)
	api.POST("/orders/:id/review", reviewHandler.Submit, authMw.RequireAuth)
	api.POST("/detect", detectHandler.Detect, authMw.RequireAuth)
	api.POST("/uploads/product-image", uploadHandler.UploadProductImage, authMw.RequireAuth)

	return &Server{
		e: e,
		repos: []interface{ SetDB(*gorm.DB) }{
			productRepo, reservationRepo, orderRepo, reviewRepo, farmRepo, profileRepo, cultivarRepo,
		},
		sha:   sha,
		build: buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	for _, r := range s.repos {
		r.SetDB(db)
	}
}
