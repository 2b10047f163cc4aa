// Package api exposes the recap pipeline over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"courtside/orchestrator"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(state *orchestrator.Manager, runner *orchestrator.Runner) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterHealthRoutes(r)
	RegisterRecapRoutes(r, state, runner)
	RegisterArticleRoutes(r, runner)
	return r
}
