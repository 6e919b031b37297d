package router

import (
	"campusmart/config"
	"campusmart/internal/domain"
	"campusmart/internal/handler"
	"campusmart/internal/middleware"
	"campusmart/internal/repository"
	"campusmart/internal/service"
	"campusmart/internal/settings"
	"campusmart/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	reportRepo := repository.NewReportRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	browserRepo := repository.NewBrowserRepository(db)

	// Services
	settingsSvc := settings.NewService(settingRepo, activityRepo, settings.NewCache(cfg.Settings.CacheTTL))
	authSvc := service.NewAuthService(cfg, userRepo)
	adminAuthSvc := service.NewAdminAuthService(cfg, adminRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, settingsSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo)
	productHandler := handler.NewProductHandler(productRepo, settingsSvc)
	wishlistHandler := handler.NewWishlistHandler(wishlistRepo, productRepo)
	reportHandler := handler.NewReportHandler(reportRepo, productRepo, settingsSvc)
	uploadHandler := handler.NewUploadHandler(cloud)
	adminHandler := handler.NewAdminHandler(adminAuthSvc, adminRepo, userRepo, productRepo, reportRepo, activityRepo)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	browserHandler := handler.NewBrowserHandler(browserRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	apiGate := middleware.APIEnabled(settingsSvc)
	maintGate := middleware.Maintenance(settingsSvc)

	api := r.Group("/api/v1")

	// The status probe stays reachable during maintenance and shutdown.
	api.GET("/admin/settings/public/status", settingsHandler.PublicStatus)

	public := api.Group("")
	public.Use(apiGate, maintGate)
	{
		authGroup := public.Group("/auth")
		{
			authGroup.POST("/register",
				middleware.RequireFeature(settingsSvc, domain.SettingRegistrationEnabled), authHandler.Register)
			authGroup.POST("/login",
				middleware.RequireFeature(settingsSvc, domain.SettingLoginEnabled), authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token",
				middleware.RequireFeature(settingsSvc, domain.SettingLoginEnabled), googleOAuthHandler.Token)
		}

		public.GET("/products", productHandler.Browse)
		public.GET("/products/:id", productHandler.Get)
		public.POST("/products", authMw,
			middleware.RequireFeature(settingsSvc, domain.SettingProductCreationEnabled), productHandler.Create)
		public.PUT("/products/:id", authMw,
			middleware.RequireFeature(settingsSvc, domain.SettingProductEditingEnabled), productHandler.Update)
		public.DELETE("/products/:id", authMw, productHandler.Delete)
		public.POST("/products/:id/sold", authMw, productHandler.MarkSold)

		wishlist := public.Group("/wishlist")
		wishlist.Use(authMw, middleware.RequireFeature(settingsSvc, domain.SettingWishlistEnabled))
		{
			wishlist.POST("/:product_id", wishlistHandler.Add)
			wishlist.DELETE("/:product_id", wishlistHandler.Remove)
		}

		public.POST("/reports", authMw, reportHandler.Create)

		me := public.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.GET("/products", productHandler.MyListings)
			me.GET("/wishlist",
				middleware.RequireFeature(settingsSvc, domain.SettingWishlistEnabled), wishlistHandler.List)
			me.POST("/upload/product-image", uploadHandler.UploadProductImage)
		}
	}

	// Admin console bypasses the API and maintenance gates so operators
	// can recover a disabled service.
	admin := api.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)

		authed := admin.Group("")
		authed.Use(middleware.AdminRequired(&cfg.JWT))
		{
			authed.GET("/dashboard", adminHandler.Dashboard)
			authed.GET("/analytics", adminHandler.Analytics)
			authed.GET("/activity", adminHandler.ListActivity)

			authed.GET("/users", adminHandler.ListUsers)
			authed.GET("/users/:id", adminHandler.GetUser)
			authed.GET("/sellers", adminHandler.ListSellers)
			authed.GET("/products", adminHandler.ListProducts)
			authed.GET("/reports", adminHandler.ListReports)

			mod := authed.Group("")
			mod.Use(middleware.RequireAdminRole(domain.RoleModerator))
			{
				mod.POST("/products/:id/flag", adminHandler.FlagProduct)
				mod.POST("/products/:id/unflag", adminHandler.UnflagProduct)
				mod.POST("/products/:id/deactivate", adminHandler.DeactivateProduct)
				mod.PUT("/reports/:id", adminHandler.UpdateReport)
			}

			full := authed.Group("")
			full.Use(middleware.RequireAdminRole(domain.RoleAdmin))
			{
				full.POST("/users/:id/suspend", adminHandler.SuspendUser)
				full.POST("/users/:id/unsuspend", adminHandler.UnsuspendUser)
				full.DELETE("/users/:id", adminHandler.DeleteUser)
				full.DELETE("/products/:id", adminHandler.DeleteProduct)

				full.GET("/settings", settingsHandler.List)
				full.GET("/settings/:key", settingsHandler.GetByKey)
				full.PUT("/settings/:key", settingsHandler.Update)
				full.PUT("/settings/bulk", settingsHandler.UpdateBulk)
				full.POST("/settings/maintenance/toggle", settingsHandler.ToggleMaintenance)
			}

			super := authed.Group("")
			super.Use(middleware.RequireAdminRole(domain.RoleSuperAdmin))
			{
				super.POST("/settings/emergency/shutdown", settingsHandler.EmergencyShutdown)

				super.POST("/accounts", adminHandler.CreateAdmin)
				super.GET("/accounts", adminHandler.ListAdmins)
				super.PUT("/accounts/:id", adminHandler.UpdateAdmin)

				super.GET("/database/tables", browserHandler.ListTables)
				super.GET("/database/tables/:name", browserHandler.BrowseTable)
			}
		}
	}

	return r
}
