package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"moodtracker/internal/config"
	"moodtracker/internal/models"
)

// TelegramNotifier sends a message to a configured operations chat whenever
// a mood entry is flagged for crisis language. Entry text is never included
// in the alert.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates the risk alert notifier. Returns nil, nil when
// alerts are disabled in config; callers must handle the nil notifier.
func NewTelegramNotifier(cfg *config.Config, logger *zap.Logger) (*TelegramNotifier, error) {
	if !cfg.RiskAlerts.Enabled || cfg.RiskAlerts.TelegramBotToken == "" {
		logger.Info("Risk alerts are disabled (risk_alerts.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.RiskAlerts.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Risk alert bot authorized", zap.String("username", botAPI.Self.UserName))

	return &TelegramNotifier{
		api:    botAPI,
		chatID: cfg.RiskAlerts.TelegramChatID,
		logger: logger,
	}, nil
}

// NotifyRisk sends an alert for a risk-flagged entry. The entry id is
// enough for an operator to look the record up; the raw text stays out of
// the chat.
func (n *TelegramNotifier) NotifyRisk(ctx context.Context, entry *models.MoodEntry) error {
	text := fmt.Sprintf(
		"Risk-flagged mood entry recorded.\nEntry ID: %d\nUser ID: %d\nEmotion: %s\nTime: %s",
		entry.ID, entry.UserID, entry.Emotion, entry.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send risk alert: %w", err)
	}

	n.logger.Info("Risk alert sent", zap.Int64("entry_id", entry.ID))
	return nil
}
