package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courtside/orchestrator"
)

// RunRecapRequest selects the date to recap. An empty date means yesterday.
type RunRecapRequest struct {
	Date string `json:"date"`
}

// RegisterRecapRoutes registers the recap pipeline endpoints.
func RegisterRecapRoutes(r *gin.Engine, state *orchestrator.Manager, runner *orchestrator.Runner) {
	g := r.Group("/api/recaps")
	g.POST("/run", handleRunRecap(runner))
	g.POST("/publish", handlePublishRecap(runner))
	g.POST("/image", handleRegenerateImage(runner))
	g.GET("/status", handleRecapStatus(state))
}

// handleRunRecap kicks off a background generation run.
func handleRunRecap(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RunRecapRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		date := time.Now().AddDate(0, 0, -1)
		if req.Date != "" {
			parsed, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			date = parsed
		}

		runID, err := runner.Start(date)
		if err != nil {
			if errors.Is(err, orchestrator.ErrRunActive) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"run_id": runID,
			"date":   date.Format("2006-01-02"),
		})
	}
}

// handlePublishRecap publishes the ready draft.
func handlePublishRecap(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := runner.Publish(c.Request.Context())
		if err != nil {
			if errors.Is(err, orchestrator.ErrNoDraft) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !result.Success {
			c.JSON(http.StatusBadGateway, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// handleRegenerateImage renders a fresh header image for the ready draft.
func handleRegenerateImage(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := runner.RegenerateImage(c.Request.Context())
		if err != nil {
			if errors.Is(err, orchestrator.ErrNoDraft) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"image_path": path})
	}
}

// handleRecapStatus returns a snapshot of the pipeline state.
func handleRecapStatus(state *orchestrator.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, state.Snapshot())
	}
}
