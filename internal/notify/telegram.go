package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shardeum-globalswap/swapexec/internal/executor"
	"github.com/shardeum-globalswap/swapexec/internal/helpers"
	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
)

// TelegramRecorder pushes a one-line summary of each broadcast swap to a
// Telegram chat.
type TelegramRecorder struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramRecorder(token string, chatID int64) (*TelegramRecorder, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	telemetry.Infof("[notify] telegram recorder online as @%s", bot.Self.UserName)
	return &TelegramRecorder{bot: bot, chatID: chatID}, nil
}

func (t *TelegramRecorder) RecordSwap(_ context.Context, r executor.Receipt) error {
	text := fmt.Sprintf("Swap sent\n%s\nmethod: %s\nin: %s, out: %s\ngas limit: %d, nonce: %d",
		helpers.FormatTxHash(r.Hash), r.Method,
		helpers.FormatEth(r.Trade.AmountIn), helpers.FormatEth(r.Trade.AmountOut),
		r.GasLimit, r.Nonce)
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
