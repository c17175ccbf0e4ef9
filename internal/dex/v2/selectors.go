package v2

import (
	"github.com/ethereum/go-ethereum/crypto"
)

// Router method names used by the candidate encoder. Names match the
// UniswapV2Router02 ABI exactly; Selector() derives the 4-byte id.
const (
	MethodSwapExactTokensForTokens    = "swapExactTokensForTokens"
	MethodSwapExactTokensForTokensFoT = "swapExactTokensForTokensSupportingFeeOnTransferTokens"
	MethodSwapTokensForExactTokens    = "swapTokensForExactTokens"
	MethodSwapExactETHForTokens       = "swapExactETHForTokens"
	MethodSwapExactETHForTokensFoT    = "swapExactETHForTokensSupportingFeeOnTransferTokens"
	MethodSwapETHForExactTokens       = "swapETHForExactTokens"
)

var signatures = map[string]string{
	MethodSwapExactTokensForTokens:    "swapExactTokensForTokens(uint256,uint256,address[],address,uint256)",
	MethodSwapExactTokensForTokensFoT: "swapExactTokensForTokensSupportingFeeOnTransferTokens(uint256,uint256,address[],address,uint256)",
	MethodSwapTokensForExactTokens:    "swapTokensForExactTokens(uint256,uint256,address[],address,uint256)",
	MethodSwapExactETHForTokens:       "swapExactETHForTokens(uint256,address[],address,uint256)",
	MethodSwapExactETHForTokensFoT:    "swapExactETHForTokensSupportingFeeOnTransferTokens(uint256,address[],address,uint256)",
	MethodSwapETHForExactTokens:       "swapETHForExactTokens(uint256,address[],address,uint256)",
}

// Selector returns the 4-byte function id for a known method name,
// or false for anything else.
func Selector(method string) ([4]byte, bool) {
	sig, ok := signatures[method]
	if !ok {
		return [4]byte{}, false
	}
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(sig))[:4])
	return sel, true
}

// IsFeeOnTransfer reports whether the method is a fee-on-transfer variant.
func IsFeeOnTransfer(method string) bool {
	return method == MethodSwapExactTokensForTokensFoT || method == MethodSwapExactETHForTokensFoT
}
