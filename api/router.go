package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Establishes HTTP router.
func (service *Service) setupRouter(server *http.Server) {
	router := gin.Default()

	router.Use(requestIDMiddleware())
	router.Use(service.corsMiddleware())

	router.GET(PingURL, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	router.POST(RenderURL, service.renderMarkdown)
	router.POST(DocumentRenderURL, service.renderDocument)

	server.Handler = router
	service.router = router
}
