package routes

import (
	"log/slog"

	"github.com/francosciascia/expert-giggle/controllers"
	"github.com/francosciascia/expert-giggle/middlewares"
	"github.com/francosciascia/expert-giggle/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options wires the router to its collaborators.
type Options struct {
	DB          *gorm.DB
	Logger      *slog.Logger
	CORSOrigins []string
	JWTSecret   string
	Archiver    services.Archiver
	Hub         *services.PlanHub
}

func SetupRouter(opts Options) *gin.Engine {
	hub := opts.Hub
	if hub == nil {
		hub = services.NewPlanHub(opts.Logger)
	}

	rutinaSvc := services.NewRutinaService(opts.DB, hub)
	exportSvc := services.NewExportService(rutinaSvc, opts.Archiver, opts.Logger)
	rutinas := controllers.NewRutinaController(rutinaSvc, exportSvc)
	ejercicios := controllers.NewEjercicioController(services.NewEjercicioService(opts.DB))
	plan := controllers.NewPlanController(services.NewPlanService(opts.DB, hub))
	planWS := controllers.NewPlanWSController(hub, opts.CORSOrigins)

	r := gin.New()
	r.Use(middlewares.RequestLogger(opts.Logger), gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		r.Use(middlewares.CORS(opts.CORSOrigins))
	}

	r.GET("/", controllers.Root)
	r.GET("/health", controllers.Health)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(opts.JWTSecret))
	{
		rg := api.Group("/rutinas")
		rg.GET("/", rutinas.List)
		rg.GET("/buscar", rutinas.Search)
		rg.GET("/:id", rutinas.Get)
		rg.POST("/", rutinas.Create)
		rg.PUT("/:id", rutinas.Update)
		rg.DELETE("/:id", rutinas.Delete)
		rg.POST("/:id/ejercicios", rutinas.AddExercise)
		rg.PUT("/:id/ejercicios/reordenar", rutinas.Reorder)
		rg.POST("/:id/duplicar", rutinas.Duplicate)
		rg.GET("/:id/export", rutinas.ExportFile)

		eg := api.Group("/ejercicios")
		eg.PUT("/:id", ejercicios.Update)
		eg.DELETE("/:id", ejercicios.Delete)

		pg := api.Group("/plan")
		pg.GET("/", plan.GetWeek)
		pg.PUT("/", plan.Assign)
		pg.DELETE("/:dia_semana", plan.Clear)
		pg.GET("/ws", planWS.Stream)
	}

	return r
}
