package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cineapp/internal/handler/api"
	"cineapp/internal/handler/middleware"
	"cineapp/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservations *api.ReservationHandler
	Showtimes    *api.ShowtimeHandler
	Rooms        *api.RoomHandler
	Movies       *api.MovieHandler
	Customers    *api.CustomerHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, requestLogger *middleware.RequestLogger, h Handlers) {
	setupMiddleware(engine, cfg, requestLogger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, requestLogger *middleware.RequestLogger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(requestLogger.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/reservations"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservations.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Reservations.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservations.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Reservations.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservations.Delete},
		})

		addRoutes(apiGroup.Group("/showtimes"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Showtimes.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Showtimes.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Showtimes.Get},
			{Method: http.MethodGet, Path: "/:id/deletable", Handler: h.Showtimes.Deletable},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Showtimes.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Showtimes.Delete},
		})

		addRoutes(apiGroup.Group("/rooms"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Rooms.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Rooms.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Rooms.Get},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Rooms.Availability},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Rooms.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Rooms.Delete},
		})

		addRoutes(apiGroup.Group("/movies"), crudRoutes(h.Movies))
		addRoutes(apiGroup.Group("/customers"), crudRoutes(h.Customers))
	}
}

type crudHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func crudRoutes(h crudHandler) []route {
	return []route{
		{Method: http.MethodPost, Path: "", Handler: h.Create},
		{Method: http.MethodGet, Path: "", Handler: h.List},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Get},
		{Method: http.MethodPut, Path: "/:id", Handler: h.Update},
		{Method: http.MethodDelete, Path: "/:id", Handler: h.Delete},
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
