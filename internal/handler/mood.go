package handler

import (
	"errors"
	"net/http"
	"time"

	"moodtracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MoodHandler interface {
	Predict(c *gin.Context)
	WeeklySummary(c *gin.Context)
}

type moodHandler struct {
	moodService service.MoodService
	log         *logrus.Logger
}

func NewMoodHandler(moodService service.MoodService, log *logrus.Logger) MoodHandler {
	return &moodHandler{moodService: moodService, log: log}
}

type PredictRequest struct {
	Text string `json:"text" binding:"required"`
}

// Predict handles POST /api/mood/predict: classifies the submitted text and
// stores one mood entry for the authenticated user.
func (h *moodHandler) Predict(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for predict: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.moodService.RecordEntry(c.Request.Context(), userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrClassification):
			h.log.Errorf("Classification failed for user %d: %v", userID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Sentiment classification failed"})
		default:
			h.log.Errorf("Failed to record mood entry for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record mood entry"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// WeeklySummary handles GET /api/mood/weekly-summary: aggregates the
// authenticated user's entries over the trailing 7 days.
func (h *moodHandler) WeeklySummary(c *gin.Context) {
	userID := c.MustGet("user_id").(int64)

	summary, err := h.moodService.WeeklySummary(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		h.log.Errorf("Failed to build weekly summary for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build weekly summary"})
		return
	}

	if summary.TotalEntries == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No entries this week"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
