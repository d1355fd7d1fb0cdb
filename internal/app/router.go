package app

import (
	"bergerie_backend/docs"
	"bergerie_backend/internal/config"
	"bergerie_backend/internal/middleware"
	"bergerie_backend/internal/model"

	"bergerie_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerBergerRoutes(authGroup, c)
		a.registerResponsableRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

// Public surface: health, login and the guest self-registration form. The
// form is opened from a link on the guest's own phone, so it carries no JWT.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	publicAPI := router.Group("/api/public")
	{
		publicAPI.GET("/cities", c.city.GetCities)
		publicAPI.POST("/registration/session", c.registration.StartSession)
		publicAPI.GET("/registration/session/:token", c.registration.GetSession)
		publicAPI.POST("/registration/session/:token/submit", c.registration.Submit)
	}
}

// Routes open to every authenticated role.
func (a *App) registerBergerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.GET("/dashboard", c.dashboard.GetSummary)

	// Visitors
	rg.GET("/visitors", c.visitor.GetVisitors)
	rg.POST("/visitors", c.visitor.CreateVisitor)
	rg.GET("/visitors/:id", c.visitor.GetVisitor)
	rg.PUT("/visitors/:id", c.visitor.UpdateVisitor)
	rg.PUT("/visitors/:id/status", c.visitor.SetManualStatus)
	rg.PUT("/visitors/:id/bergerie", c.visitor.AssignBergerie)
	rg.POST("/visitors/:id/photo", c.visitor.UploadPhoto)

	// Monthly discipleship scoring
	rg.GET("/kpi/config", c.kpi.GetConfig)
	rg.POST("/kpi/preview", c.kpi.Preview)
	rg.GET("/visitors/:id/kpi", c.kpi.GetHistory)
	rg.GET("/visitors/:id/kpi/:period", c.kpi.GetRecord)
	rg.PUT("/visitors/:id/kpi/:period", c.kpi.SaveRecord)
	rg.GET("/visitors/:id/kpi-summary", c.kpi.GetSummary)

	// Attendance
	rg.GET("/visitors/:id/presence", c.presence.GetPresences)
	rg.PUT("/visitors/:id/presence", c.presence.SavePresence)
	rg.GET("/presence/fidelity", c.presence.GetFidelityReport)

	// Bergeries
	rg.GET("/bergeries", c.bergerie.GetBergeries)
	rg.GET("/bergeries/:id", c.bergerie.GetBergerie)
	rg.GET("/bergeries/:id/members", c.bergerie.GetMembers)
	rg.GET("/bergeries/:id/stats", c.bergerie.GetStats)
}

// Routes reserved to city overseers and admins.
func (a *App) registerResponsableRoutes(rg *gin.RouterGroup, c *controllers) {
	responsable := rg.Group("/")
	responsable.Use(middleware.RoleMiddleware(model.Responsable, model.Admin))
	{
		responsable.POST("/bergeries", c.bergerie.CreateBergerie)
		responsable.PUT("/bergeries/:id", c.bergerie.UpdateBergerie)
		responsable.DELETE("/bergeries/:id", c.bergerie.DeleteBergerie)
		responsable.DELETE("/visitors/:id", c.visitor.DeleteVisitor)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		adminOnly := admin.Group("/")
		adminOnly.Use(middleware.RoleMiddleware(model.Admin))
		{
			adminOnly.GET("/users", c.user.GetUsers)
			adminOnly.GET("/users/:id", c.user.GetUser)
			adminOnly.PUT("/users/:id", c.user.UpdateUser)
			adminOnly.DELETE("/users/:id", c.user.DeleteUser)
			adminOnly.POST("/users/:id/reset-password", c.user.ResetPassword)
			adminOnly.POST("/users/:id/disable", c.user.DisableUser)

			adminOnly.POST("/cities", c.city.CreateCity)
			adminOnly.PUT("/cities/:id", c.city.UpdateCity)

			adminOnly.GET("/scoring/export", c.kpi.ExportConfig)
		}
	}
}
