package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
)

// Diagnostic messages surfaced to the caller when a candidate fails gas
// estimation.
const (
	msgGasEstimateAnomaly = "Unexpected issue with estimating the gas. Please try again."
	msgSlippageOrFee      = "This transaction will not succeed either due to price movement or fee on transfer. Try increasing your slippage tolerance."
)

// Slippage-guard revert strings emitted by the V2 router.
var slippageReverts = []string{
	"INSUFFICIENT_OUTPUT_AMOUNT",
	"EXCESSIVE_INPUT_AMOUNT",
}

// diagnose explains a failed gas estimate. It replays the call with
// eth_call: a simulated success means the estimate failure itself was the
// anomaly; a simulated revert gets its reason extracted and classified.
func (e *Executor) diagnose(ctx context.Context, call ethereum.CallMsg, estimateErr error) string {
	_, simErr := e.backend.CallContract(ctx, call, nil)
	if simErr == nil {
		telemetry.Warnf("[executor] estimate failed but simulation passed for %s: %v", call.To.Hex(), estimateErr)
		return msgGasEstimateAnomaly
	}
	reason, ok := revertReason(simErr)
	if !ok {
		reason, ok = revertReason(estimateErr)
	}
	if !ok {
		return msgGasEstimateAnomaly
	}
	return classifyRevert(reason)
}

func classifyRevert(reason string) string {
	for _, guard := range slippageReverts {
		if strings.Contains(reason, guard) {
			return msgSlippageOrFee
		}
	}
	return fmt.Sprintf("The transaction cannot succeed due to error: %s. This is probably an issue with one of the tokens you are swapping.", reason)
}

// revertReason digs the Error(string) payload out of an RPC error. Geth-style
// nodes attach the return data via rpc.DataError; others only embed the
// decoded reason in the message text.
func revertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if hexData, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(hexData); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason, true
				}
			}
		}
	}
	msg := err.Error()
	for _, prefix := range []string{"execution reverted: ", "execution reverted with reason: "} {
		if i := strings.Index(msg, prefix); i >= 0 {
			reason := strings.TrimSpace(msg[i+len(prefix):])
			if reason != "" {
				return reason, true
			}
		}
	}
	return "", false
}
