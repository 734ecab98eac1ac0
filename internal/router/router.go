package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/qabot/backend/config"
	"github.com/qabot/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	chatHandler *handler.ChatHandler,
	qaHandler *handler.QAHandler,
	eventHandler *handler.EventHandler,
	communicationHandler *handler.CommunicationHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), gin.Logger(), gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
	}))

	r.GET("/", handler.Home)
	r.GET("/doc", handler.Documentation)

	// 聊天
	r.POST("/predict", chatHandler.Predict)
	r.POST("/learn", chatHandler.Learn)

	qaHandler.RegisterRoutes(r)
	eventHandler.RegisterRoutes(r)
	communicationHandler.RegisterRoutes(r)

	return r
}
