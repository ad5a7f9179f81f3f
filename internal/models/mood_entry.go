package models

import "time"

// Emotion is the coarse emotion category derived locally from entry text.
// It is never produced by the sentiment model.
type Emotion string

const (
	EmotionSadness   Emotion = "Sadness"
	EmotionAnger     Emotion = "Anger"
	EmotionAnxiety   Emotion = "Anxiety"
	EmotionHappiness Emotion = "Happiness"
	EmotionNeutral   Emotion = "Neutral"
)

// MoodEntry represents one classified mood entry stored in the
// 'mood_entries' table. Entries are insert-only: once written they are
// never updated or deleted by this service.
type MoodEntry struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Text       string    `db:"text" json:"text"`
	Sentiment  string    `db:"sentiment" json:"sentiment"`   // stored verbatim as returned by the model
	Confidence float64   `db:"confidence" json:"confidence"` // model score in [0,1], never recomputed
	Emotion    Emotion   `db:"emotion" json:"emotion"`
	RiskFlag   bool      `db:"risk_flag" json:"risk_flag"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
