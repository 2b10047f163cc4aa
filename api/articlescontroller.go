package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtside/blog"
	"courtside/orchestrator"
)

// PublishArticleRequest is an ad-hoc article publish: markdown in, record on
// the blog host out.
type PublishArticleRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url"`
}

// RegisterArticleRoutes registers article-related routes.
func RegisterArticleRoutes(r *gin.Engine, runner *orchestrator.Runner) {
	r.POST("/api/articles/publish", handlePublishArticle(runner))
}

// handlePublishArticle builds a record from the payload and publishes it.
func handlePublishArticle(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PublishArticleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := runner.PublishArticle(blog.BuildParams{
			Title:    req.Title,
			Content:  req.Content,
			Author:   req.Author,
			ImageURL: req.ImageURL,
		})
		if result.Record == nil {
			// The title produced no usable slug: a caller error, not a transfer failure.
			c.JSON(http.StatusBadRequest, result)
			return
		}
		if !result.Success {
			c.JSON(http.StatusBadGateway, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
