package api

import (
	"log"
	stdhttp "net/http"

	intconfig "railway/internal/config"
	h "railway/internal/http/handlers"
	"railway/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// crud is the handler set of one catalog resource. remove is nil for
// resources that cannot be deleted.
type crud struct {
	list, get, create, update, remove gin.HandlerFunc
}

func NewRouter(env intconfig.Env, policy middleware.Authorizer) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSOrigins),
		middleware.Authenticate([]byte(env.JWTSecret)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		railway := api.Group("/railway")

		mountCatalog(railway, policy, "train-type", crud{h.ListTrainTypes, h.GetTrainType, h.CreateTrainType, h.UpdateTrainType, h.DeleteTrainType})
		mountCatalog(railway, policy, "train", crud{h.ListTrains, h.GetTrain, h.CreateTrain, h.UpdateTrain, nil})
		mountCatalog(railway, policy, "station", crud{h.ListStations, h.GetStation, h.CreateStation, h.UpdateStation, h.DeleteStation})
		mountCatalog(railway, policy, "route", crud{h.ListRoutes, h.GetRoute, h.CreateRoute, h.UpdateRoute, h.DeleteRoute})
		mountCatalog(railway, policy, "crew", crud{h.ListCrew, h.GetCrew, h.CreateCrew, h.UpdateCrew, h.DeleteCrew})
		mountCatalog(railway, policy, "journey", crud{h.ListJourneys, h.GetJourney, h.CreateJourney, h.UpdateJourney, h.DeleteJourney})

		orders := railway.Group("/order", middleware.RequireAccess(policy, "order"))
		orders.GET("/", h.ListOrders)
		orders.POST("/", h.CreateOrder)
		orders.GET("/:id/", h.GetOrder)
		orders.DELETE("/:id/", h.DeleteOrder)
		orders.GET("/:id/e-ticket", h.OrderETicket)
	}

	h.SetRouter(r)
	return r
}

func mountCatalog(parent *gin.RouterGroup, policy middleware.Authorizer, resource string, hs crud) {
	g := parent.Group("/"+resource, middleware.RequireAccess(policy, resource))
	g.GET("/", hs.list)
	g.POST("/", hs.create)
	g.GET("/:id/", hs.get)
	g.PUT("/:id/", hs.update)
	g.PATCH("/:id/", hs.update)
	if hs.remove != nil {
		g.DELETE("/:id/", hs.remove)
	}
}
