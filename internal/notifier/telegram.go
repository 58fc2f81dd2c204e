// Package notifier delivers reminder messages to users over Telegram.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	domerrors "github.com/teheiw192/course-reminder-go/internal/errors"
	"github.com/teheiw192/course-reminder-go/internal/logger"
)

// Telegram sends messages through the Telegram Bot API. User identifiers are
// Telegram chat IDs rendered as decimal strings.
type Telegram struct {
	bot  *tgbotapi.BotAPI
	log  *logger.Logger
	wrap *domerrors.ErrorWrapper
}

// NewTelegram creates a Telegram notifier with the given bot token.
func NewTelegram(token string, log *logger.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{
		bot:  bot,
		log:  log.WithModule("notifier"),
		wrap: domerrors.NewWrapper("notifier", "send"),
	}, nil
}

// Send delivers one text message. There is no retry here: the caller treats
// delivery as best-effort.
func (t *Telegram) Send(ctx context.Context, userID, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("user id %q is not a chat id: %w", userID, domerrors.ErrInvalidInput)
	}

	msg := tgbotapi.NewMessage(chatID, message)
	if _, err := t.bot.Send(msg); err != nil {
		t.log.WithError(err).WithField("chat_id", chatID).Warn("Telegram send failed")
		return t.wrap.Wrap(errors.Join(domerrors.ErrNotifyFailure, err), "提醒发送失败，请稍后再试")
	}
	return nil
}
