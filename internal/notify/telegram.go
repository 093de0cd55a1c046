// Package notify pushes workflow events to tutors over Telegram.
// Delivery is best effort: a failed send is logged and the workflow
// that triggered it carries on.
package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/model"
)

// TelegramNotifier sends messages to tutors who left a chat id on
// their profile. Tutors without one are skipped.
type TelegramNotifier struct {
	bot    *bot.Bot
	logger *zap.Logger
}

// NewTelegramNotifier creates a notifier around a bot token.
func NewTelegramNotifier(token string, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: b, logger: logger}, nil
}

// StudentRequestedLinkage tells the tutor a student registered with
// their code and is waiting for a decision.
func (n *TelegramNotifier) StudentRequestedLinkage(ctx context.Context, tutor *model.Tutor, student *model.Student) {
	text := fmt.Sprintf("New student request: %s (grade %d) registered with your code %s.",
		student.Name, student.GradeLevel, tutor.Code)
	n.send(ctx, tutor, text)
}

// StudentRequestedEnrollment tells the tutor a student asked to join
// one of their courses.
func (n *TelegramNotifier) StudentRequestedEnrollment(ctx context.Context, tutor *model.Tutor, student *model.Student, course *model.Course) {
	text := fmt.Sprintf("New enrollment request: %s wants to join %s (%s).",
		student.Name, course.Name, course.Code)
	n.send(ctx, tutor, text)
}

func (n *TelegramNotifier) send(ctx context.Context, tutor *model.Tutor, text string) {
	if tutor.TelegramChatID == nil {
		return
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: *tutor.TelegramChatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Error("Failed to send notification",
			zap.Int64("chat_id", *tutor.TelegramChatID),
			zap.Error(err),
		)
	}
}
