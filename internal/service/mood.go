package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"moodtracker/internal/analysis"
	"moodtracker/internal/models"
	"moodtracker/internal/repository"
	"moodtracker/internal/sentiment"

	"go.uber.org/zap"
)

var (
	ErrEmptyText      = errors.New("entry text is required")
	ErrClassification = errors.New("sentiment classification failed")
)

// Safety suggestion appended to the weekly summary when any entry in the
// window carried the risk flag.
const riskSuggestion = "Some entries showed emotional distress. Consider talking to someone you trust."

// SentimentClassifier is the classification capability consumed by the
// pipeline. The production implementation is the HTTP client in
// internal/sentiment; tests substitute a fake.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (*sentiment.ClassifyResponse, error)
}

// RiskNotifier receives entries whose risk flag is set. Notification is
// best-effort: a failure is logged and never fails the originating request.
type RiskNotifier interface {
	NotifyRisk(ctx context.Context, entry *models.MoodEntry) error
}

// EntryResult is what submit-entry returns to the transport layer.
// ConfidencePercent is a presentation transform of the stored confidence
// (score*100 rounded to 2 decimals); the stored value stays in [0,1].
type EntryResult struct {
	Sentiment         string         `json:"sentiment"`
	ConfidencePercent float64        `json:"confidence"`
	Emotion           models.Emotion `json:"emotion"`
	RiskDetected      bool           `json:"risk_detected"`
}

// WeeklySummary aggregates one user's entries over the trailing 7 days.
// TotalEntries == 0 means no entries fell in the window; the numeric
// fields are then meaningless and AISummary is empty.
type WeeklySummary struct {
	TotalEntries int    `json:"total_entries"`
	Positive     int    `json:"positive"`
	Negative     int    `json:"negative"`
	RiskFlags    int    `json:"risk_flags"`
	MoodScore    int    `json:"mood_score"`
	AISummary    string `json:"ai_summary"`
}

type MoodService interface {
	RecordEntry(ctx context.Context, userID int64, text string) (*EntryResult, error)
	WeeklySummary(ctx context.Context, userID int64, now time.Time) (*WeeklySummary, error)
}

type moodService struct {
	classifier SentimentClassifier
	repo       repository.MoodEntryRepository
	notifier   RiskNotifier
	logger     *zap.Logger
}

// NewMoodService wires the pipeline. notifier may be nil when risk alerts
// are disabled.
func NewMoodService(classifier SentimentClassifier, repo repository.MoodEntryRepository, notifier RiskNotifier, logger *zap.Logger) MoodService {
	return &moodService{
		classifier: classifier,
		repo:       repo,
		notifier:   notifier,
		logger:     logger,
	}
}

// RecordEntry runs the classification pipeline for a single entry:
// validate, classify remotely, tag emotion and risk locally, then persist
// one immutable row. Any failure before the insert leaves the store
// untouched.
func (s *moodService) RecordEntry(ctx context.Context, userID int64, text string) (*EntryResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.logger.Error("Classifier call failed", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	entry := &models.MoodEntry{
		UserID:     userID,
		Text:       text,
		Sentiment:  result.Label,
		Confidence: result.Score,
		Emotion:    analysis.ClassifyEmotion(text),
		RiskFlag:   analysis.DetectRisk(text),
	}

	if err := s.repo.InsertEntry(entry); err != nil {
		s.logger.Error("Failed to insert mood entry", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to save mood entry: %w", err)
	}

	s.logger.Info("Mood entry recorded",
		zap.Int64("user_id", userID),
		zap.String("sentiment", entry.Sentiment),
		zap.String("emotion", string(entry.Emotion)),
		zap.Bool("risk_flag", entry.RiskFlag))

	if entry.RiskFlag && s.notifier != nil {
		if err := s.notifier.NotifyRisk(ctx, entry); err != nil {
			s.logger.Error("Failed to send risk alert", zap.Error(err), zap.Int64("entry_id", entry.ID))
		}
	}

	return &EntryResult{
		Sentiment:         entry.Sentiment,
		ConfidencePercent: roundPercent(entry.Confidence),
		Emotion:           entry.Emotion,
		RiskDetected:      entry.RiskFlag,
	}, nil
}

// WeeklySummary reduces the user's entries with created_at >= now-7d.
// It reads nothing outside the window and mutates nothing.
func (s *moodService) WeeklySummary(ctx context.Context, userID int64, now time.Time) (*WeeklySummary, error) {
	weekAgo := now.Add(-7 * 24 * time.Hour)

	entries, err := s.repo.GetEntriesByUserSince(userID, weekAgo)
	if err != nil {
		s.logger.Error("Failed to query weekly entries", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to load weekly entries: %w", err)
	}

	total := len(entries)
	if total == 0 {
		return &WeeklySummary{}, nil
	}

	positive := 0
	negative := 0
	risks := 0
	for _, e := range entries {
		// Exact match on the stored label; the vocabulary is pinned in
		// the sentiment package.
		switch e.Sentiment {
		case sentiment.LabelPositive:
			positive++
		case sentiment.LabelNegative:
			negative++
		}
		if e.RiskFlag {
			risks++
		}
	}

	// Truncating division, matching the historical behavior.
	moodScore := positive * 100 / total

	summaryText := fmt.Sprintf(
		"This week you logged %d entries. %d positive and %d negative moods. Overall mood health score is %d%%. ",
		total, positive, negative, moodScore)
	if risks > 0 {
		summaryText += riskSuggestion
	}

	return &WeeklySummary{
		TotalEntries: total,
		Positive:     positive,
		Negative:     negative,
		RiskFlags:    risks,
		MoodScore:    moodScore,
		AISummary:    summaryText,
	}, nil
}

// roundPercent converts a [0,1] score to a percentage rounded to 2
// decimal places, e.g. 0.9456 -> 94.56.
func roundPercent(score float64) float64 {
	return math.Round(score*100*100) / 100
}
