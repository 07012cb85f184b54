package api

import (
	"time"

	"atm-monitor/api/middleware"
	"atm-monitor/api/v1/auth"
	"atm-monitor/api/v1/dashboard"
	"atm-monitor/api/v1/health"
	"atm-monitor/api/v1/reports"
	"atm-monitor/config"
	v1 "atm-monitor/services/v1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the services the HTTP handlers are wired to.
type Deps struct {
	Auth        *v1.AuthService
	Reports     *v1.ReportService
	Summaries   *v1.SummaryService
	Activity    v1.ActivityRecorder
	Metrics     *v1.Metrics
	Location    *time.Location
	CORSOrigins []string
}

func StartServer(deps Deps) error {
	r := NewRouter(deps)
	return r.Run(":" + config.AppConfig.Port)
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	SetupRoutes(r, deps)
	return r
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	authHandler := &auth.Handler{Auth: deps.Auth}
	reportHandler := &reports.Handler{Reports: deps.Reports, Location: deps.Location}
	dashboardHandler := &dashboard.Handler{
		Summaries: deps.Summaries,
		Reports:   deps.Reports,
		Activity:  deps.Activity,
		Location:  deps.Location,
	}
	authRequired := middleware.AuthRequired(deps.Auth)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", health.GetHealth)

		authApi := api.Group("/auth")
		{
			authApi.POST("/login", authHandler.Login)
		}

		reportsApi := api.Group("/reports", authRequired)
		{
			reportsApi.POST("", reportHandler.Create)
			reportsApi.GET("", reportHandler.List)
			reportsApi.PUT("/:id", reportHandler.Update)
			reportsApi.DELETE("/:id", reportHandler.Delete)
			reportsApi.GET("/export/csv", reportHandler.ExportCSV)
			reportsApi.GET("/export/xlsx", reportHandler.ExportXLSX)
		}

		dashboardApi := api.Group("/dashboard", authRequired)
		{
			dashboardApi.GET("/summary", dashboardHandler.Summary)
			dashboardApi.GET("/activity", dashboardHandler.ActivityCounters)
			dashboardApi.GET("/export/xlsx", dashboardHandler.ExportXLSX)
			dashboardApi.GET("/export/pdf", dashboardHandler.ExportPDF)
			dashboardApi.GET("/chart/status.png", dashboardHandler.StatusChart)
			dashboardApi.GET("/chart/faults.png", dashboardHandler.FaultChart)
		}
	}
}
