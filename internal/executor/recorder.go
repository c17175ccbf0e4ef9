package executor

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/shardeum-globalswap/swapexec/internal/trades"
)

// Receipt summarizes a broadcast swap for recording.
type Receipt struct {
	Hash     common.Hash
	Trade    *trades.Trade
	Method   string
	GasLimit uint64
	Nonce    uint64
}

// Recorder is notified after a swap transaction is accepted by the node.
// Recording is best-effort: failures are logged, never propagated.
type Recorder interface {
	RecordSwap(ctx context.Context, r Receipt) error
}
