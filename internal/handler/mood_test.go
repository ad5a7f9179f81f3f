package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moodtracker/internal/models"
	"moodtracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// --- fakes ---

type fakeMoodService struct {
	recordEntryFn   func(ctx context.Context, userID int64, text string) (*service.EntryResult, error)
	weeklySummaryFn func(ctx context.Context, userID int64, now time.Time) (*service.WeeklySummary, error)
}

func (f *fakeMoodService) RecordEntry(ctx context.Context, userID int64, text string) (*service.EntryResult, error) {
	return f.recordEntryFn(ctx, userID, text)
}

func (f *fakeMoodService) WeeklySummary(ctx context.Context, userID int64, now time.Time) (*service.WeeklySummary, error) {
	return f.weeklySummaryFn(ctx, userID, now)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newMoodRouter mounts the mood handler behind a stub auth layer that
// injects the given user id, mirroring what the JWT middleware does.
func newMoodRouter(svc service.MoodService, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})

	h := NewMoodHandler(svc, quietLogger())
	router.POST("/api/mood/predict", h.Predict)
	router.GET("/api/mood/weekly-summary", h.WeeklySummary)
	return router
}

// --- Predict ---

func TestPredict_Success(t *testing.T) {
	var gotUserID int64
	var gotText string
	svc := &fakeMoodService{
		recordEntryFn: func(ctx context.Context, userID int64, text string) (*service.EntryResult, error) {
			gotUserID = userID
			gotText = text
			return &service.EntryResult{
				Sentiment:         "POSITIVE",
				ConfidencePercent: 87.3,
				Emotion:           models.EmotionHappiness,
				RiskDetected:      false,
			}, nil
		},
	}
	router := newMoodRouter(svc, 7)

	body := bytes.NewBufferString(`{"text": "feeling happy"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/mood/predict", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if gotUserID != 7 {
		t.Errorf("service received user id %d, want 7", gotUserID)
	}
	if gotText != "feeling happy" {
		t.Errorf("service received text %q, want %q", gotText, "feeling happy")
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["sentiment"] != "POSITIVE" {
		t.Errorf("sentiment = %v, want POSITIVE", resp["sentiment"])
	}
	if resp["confidence"] != 87.3 {
		t.Errorf("confidence = %v, want 87.3", resp["confidence"])
	}
	if resp["emotion"] != "Happiness" {
		t.Errorf("emotion = %v, want Happiness", resp["emotion"])
	}
	if resp["risk_detected"] != false {
		t.Errorf("risk_detected = %v, want false", resp["risk_detected"])
	}
}

func TestPredict_MissingTextIsBadRequest(t *testing.T) {
	svc := &fakeMoodService{
		recordEntryFn: func(ctx context.Context, userID int64, text string) (*service.EntryResult, error) {
			t.Fatal("service must not be called when text is missing")
			return nil, nil
		},
	}
	router := newMoodRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/mood/predict", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPredict_ClassifierFailureIsBadGateway(t *testing.T) {
	svc := &fakeMoodService{
		recordEntryFn: func(ctx context.Context, userID int64, text string) (*service.EntryResult, error) {
			return nil, errors.Join(service.ErrClassification, errors.New("connection refused"))
		},
	}
	router := newMoodRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/mood/predict", bytes.NewBufferString(`{"text": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}

func TestPredict_PersistenceFailureIsInternalError(t *testing.T) {
	svc := &fakeMoodService{
		recordEntryFn: func(ctx context.Context, userID int64, text string) (*service.EntryResult, error) {
			return nil, errors.New("failed to save mood entry: connection reset")
		},
	}
	router := newMoodRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/mood/predict", bytes.NewBufferString(`{"text": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// --- WeeklySummary ---

func TestWeeklySummary_ReturnsAggregates(t *testing.T) {
	svc := &fakeMoodService{
		weeklySummaryFn: func(ctx context.Context, userID int64, now time.Time) (*service.WeeklySummary, error) {
			return &service.WeeklySummary{
				TotalEntries: 4,
				Positive:     2,
				Negative:     2,
				RiskFlags:    1,
				MoodScore:    50,
				AISummary:    "This week you logged 4 entries. ...",
			}, nil
		},
	}
	router := newMoodRouter(svc, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/mood/weekly-summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["total_entries"] != float64(4) {
		t.Errorf("total_entries = %v, want 4", resp["total_entries"])
	}
	if resp["mood_score"] != float64(50) {
		t.Errorf("mood_score = %v, want 50", resp["mood_score"])
	}
}

func TestWeeklySummary_EmptyWindowReturnsMessage(t *testing.T) {
	svc := &fakeMoodService{
		weeklySummaryFn: func(ctx context.Context, userID int64, now time.Time) (*service.WeeklySummary, error) {
			return &service.WeeklySummary{}, nil
		},
	}
	router := newMoodRouter(svc, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/mood/weekly-summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["message"] != "No entries this week" {
		t.Errorf("message = %v, want %q", resp["message"], "No entries this week")
	}
	if _, ok := resp["total_entries"]; ok {
		t.Error("empty summary must not carry numeric fields")
	}
}
