package trades

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	v2 "github.com/shardeum-globalswap/swapexec/internal/dex/v2"
)

// Candidate is one router call that could realize a trade. Args are in ABI
// order for Method; Value is the native amount attached to the call (nil for
// token-funded trades).
type Candidate struct {
	Target common.Address
	Method string
	Args   []any
	Value  *big.Int
}

// FeeOnTransfer reports whether this candidate uses a fee-on-transfer router
// variant.
func (c Candidate) FeeOnTransfer() bool {
	return v2.IsFeeOnTransfer(c.Method)
}

// BuildCandidates expands a trade into the ordered list of router calls to
// try. Exact-input trades yield two candidates, the plain method first and
// the fee-on-transfer variant second; exact-output trades yield one. Returns
// nil when the trade, recipient, or deadline is unusable.
func BuildCandidates(trade *Trade, slippageBips uint64, recipient common.Address, deadline *big.Int, router common.Address) []Candidate {
	if trade == nil || trade.Validate() != nil {
		return nil
	}
	if recipient == (common.Address{}) {
		return nil
	}
	if deadline == nil || deadline.Sign() <= 0 {
		return nil
	}

	path := make([]common.Address, len(trade.Path))
	copy(path, trade.Path)

	switch trade.Kind {
	case ExactInput:
		minOut := trade.MinAmountOut(slippageBips)
		if trade.NativeIn {
			args := []any{minOut, path, recipient, deadline}
			value := new(big.Int).Set(trade.AmountIn)
			return []Candidate{
				{Target: router, Method: v2.MethodSwapExactETHForTokens, Args: args, Value: value},
				{Target: router, Method: v2.MethodSwapExactETHForTokensFoT, Args: args, Value: value},
			}
		}
		args := []any{new(big.Int).Set(trade.AmountIn), minOut, path, recipient, deadline}
		return []Candidate{
			{Target: router, Method: v2.MethodSwapExactTokensForTokens, Args: args},
			{Target: router, Method: v2.MethodSwapExactTokensForTokensFoT, Args: args},
		}

	case ExactOutput:
		maxIn := trade.MaxAmountIn(slippageBips)
		out := new(big.Int).Set(trade.AmountOut)
		if trade.NativeIn {
			return []Candidate{{
				Target: router,
				Method: v2.MethodSwapETHForExactTokens,
				Args:   []any{out, path, recipient, deadline},
				Value:  maxIn,
			}}
		}
		return []Candidate{{
			Target: router,
			Method: v2.MethodSwapTokensForExactTokens,
			Args:   []any{out, maxIn, path, recipient, deadline},
		}}

	default:
		return nil
	}
}
