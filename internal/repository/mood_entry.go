package repository

import (
	"time"

	"moodtracker/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type MoodEntryRepository interface {
	InsertEntry(entry *models.MoodEntry) error
	GetEntriesByUserSince(userID int64, since time.Time) ([]*models.MoodEntry, error)
}

type moodEntryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMoodEntryRepository(db *sqlx.DB, logger *zap.Logger) MoodEntryRepository {
	return &moodEntryRepository{db: db, logger: logger}
}

// InsertEntry writes a fully-constructed entry as a single atomic insert.
// The database assigns id and created_at; both are scanned back into entry.
func (r *moodEntryRepository) InsertEntry(entry *models.MoodEntry) error {
	query := `INSERT INTO mood_entries (user_id, text, sentiment, confidence, emotion, risk_flag)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return r.db.QueryRowx(query, entry.UserID, entry.Text, entry.Sentiment,
		entry.Confidence, entry.Emotion, entry.RiskFlag).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *moodEntryRepository) GetEntriesByUserSince(userID int64, since time.Time) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	query := `SELECT id, user_id, text, sentiment, confidence, emotion, risk_flag, created_at
	          FROM mood_entries
	          WHERE user_id = $1 AND created_at >= $2
	          ORDER BY created_at ASC`
	err := r.db.Select(&entries, query, userID, since)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
