package trades

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Kind says which leg of the trade is fixed.
type Kind int

const (
	ExactInput Kind = iota
	ExactOutput
)

func (k Kind) String() string {
	switch k {
	case ExactInput:
		return "exact-input"
	case ExactOutput:
		return "exact-output"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const bipsDenominator = 10_000

// Trade is one intended swap along a token path. For ExactInput, AmountIn is
// fixed and AmountOut is the quoted output; for ExactOutput the roles flip.
// NativeIn marks trades funded with the chain's native coin, in which case
// Path[0] must be the wrapped-native token.
type Trade struct {
	Kind      Kind
	AmountIn  *big.Int
	AmountOut *big.Int
	Path      []common.Address
	NativeIn  bool
}

// MinAmountOut applies the slippage tolerance to the quoted output of an
// exact-input trade: quoted * (10000 - bips) / 10000, rounded down.
func (t *Trade) MinAmountOut(slippageBips uint64) *big.Int {
	out := new(big.Int).Mul(t.AmountOut, big.NewInt(int64(bipsDenominator-slippageBips)))
	return out.Div(out, big.NewInt(bipsDenominator))
}

// MaxAmountIn applies the slippage tolerance to the quoted input of an
// exact-output trade: quoted * (10000 + bips) / 10000, rounded down.
func (t *Trade) MaxAmountIn(slippageBips uint64) *big.Int {
	in := new(big.Int).Mul(t.AmountIn, big.NewInt(int64(bipsDenominator+slippageBips)))
	return in.Div(in, big.NewInt(bipsDenominator))
}

// Validate rejects trades the encoder cannot turn into router calls.
func (t *Trade) Validate() error {
	if t == nil {
		return fmt.Errorf("trade is nil")
	}
	if len(t.Path) < 2 {
		return fmt.Errorf("path needs at least 2 hops, got %d", len(t.Path))
	}
	if t.AmountIn == nil || t.AmountIn.Sign() <= 0 {
		return fmt.Errorf("amount in must be positive")
	}
	if t.AmountOut == nil || t.AmountOut.Sign() <= 0 {
		return fmt.Errorf("amount out must be positive")
	}
	return nil
}
