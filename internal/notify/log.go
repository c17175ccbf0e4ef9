package notify

import (
	"context"

	"github.com/shardeum-globalswap/swapexec/internal/executor"
	"github.com/shardeum-globalswap/swapexec/internal/helpers"
	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
)

// LogRecorder writes swap receipts to the telemetry log. It is the default
// recorder when no Telegram credentials are configured.
type LogRecorder struct{}

func (LogRecorder) RecordSwap(_ context.Context, r executor.Receipt) error {
	telemetry.Infof("[notify] swap %s method=%s in=%s out=%s gas=%d nonce=%d",
		helpers.FormatTxHash(r.Hash), r.Method,
		helpers.FormatEth(r.Trade.AmountIn), helpers.FormatEth(r.Trade.AmountOut),
		r.GasLimit, r.Nonce)
	return nil
}
