package helpers

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ETH to Wei conversion
func EthToWei(ethStr string) (*big.Int, error) {
	if ethStr == "" {
		return nil, fmt.Errorf("empty amount")
	}

	// Clean input
	ethStr = strings.TrimSuffix(strings.ToLower(ethStr), "eth")
	ethStr = strings.TrimSpace(ethStr)

	// Parse as float
	amount, err := strconv.ParseFloat(ethStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %s", ethStr)
	}

	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	// Convert to wei (multiply by 10^18)
	wei := new(big.Float).SetFloat64(amount)
	wei.Mul(wei, big.NewFloat(1e18))

	// Convert to big.Int
	result := new(big.Int)
	wei.Int(result)

	return result, nil
}

// Wei to ETH formatting
func FormatEth(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	// Convert wei to ETH (divide by 10^18)
	ethValue := new(big.Float).SetInt(wei)
	ethValue.Quo(ethValue, big.NewFloat(1e18))

	// Format with appropriate precision
	f, _ := ethValue.Float64()
	if f < 0.0001 {
		return fmt.Sprintf("%.8f", f)
	} else if f < 1 {
		return fmt.Sprintf("%.6f", f)
	} else if f < 100 {
		return fmt.Sprintf("%.4f", f)
	}
	return fmt.Sprintf("%.2f", f)
}

// ParseBips reads a slippage tolerance like "50", "50bips" or "0.5%"
func ParseBips(input string) (int, error) {
	input = strings.TrimSpace(strings.ToLower(input))

	if strings.HasSuffix(input, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(input, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage: %s", input)
		}
		return int(pct * 100), nil
	}

	input = strings.TrimSuffix(input, "bips")
	input = strings.TrimSpace(input)
	bips, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid bips value: %s", input)
	}
	return bips, nil
}

// Format address for display
func FormatAddress(addr common.Address) string {
	hex := addr.Hex()
	if len(hex) > 10 {
		return hex[:6] + "..." + hex[len(hex)-4:]
	}
	return hex
}

// Format transaction hash for display
func FormatTxHash(hash common.Hash) string {
	hex := hash.Hex()
	if len(hex) > 12 {
		return hex[:10] + "..." + hex[len(hex)-6:]
	}
	return hex
}
