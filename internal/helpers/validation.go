package helpers

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidateAddress checks if an address is valid
func ValidateAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid address format: %s", address)
	}

	addr := common.HexToAddress(address)

	// Check if it's the zero address
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("zero address not allowed")
	}

	return addr, nil
}

// ValidateAmount checks if amount is positive and within reasonable bounds
func ValidateAmount(amount *big.Int) error {
	if amount == nil {
		return fmt.Errorf("amount is nil")
	}

	if amount.Sign() <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	// Max reasonable amount (1 million ETH)
	maxAmount := new(big.Int).Mul(big.NewInt(1000000), big.NewInt(1e18))
	if amount.Cmp(maxAmount) > 0 {
		return fmt.Errorf("amount exceeds maximum allowed")
	}

	return nil
}

// ValidatePrivateKey validates and returns the private key
func ValidatePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, common.Address, error) {
	if privateKeyHex == "" {
		return nil, common.Address{}, fmt.Errorf("private key is empty")
	}

	// Remove 0x prefix if present
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")

	// Check length (64 hex chars = 32 bytes)
	if len(privateKeyHex) != 64 {
		return nil, common.Address{}, fmt.Errorf("invalid private key length")
	}

	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}

	publicKey := privateKey.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, common.Address{}, fmt.Errorf("invalid public key type")
	}

	address := crypto.PubkeyToAddress(*publicKeyECDSA)

	return privateKey, address, nil
}

// ValidateTokenPair ensures tokens are different and not zero
func ValidateTokenPair(token0, token1 common.Address) error {
	if token0 == (common.Address{}) || token1 == (common.Address{}) {
		return fmt.Errorf("token addresses cannot be zero")
	}

	if token0 == token1 {
		return fmt.Errorf("token addresses must be different")
	}

	return nil
}

// ValidateSlippageBips ensures slippage tolerance is reasonable (max 50%)
func ValidateSlippageBips(bips int) error {
	if bips < 0 || bips > 5000 {
		return fmt.Errorf("slippage must be between 0 and 5000 bips")
	}
	return nil
}

// DeadlineFromNow returns a unix deadline the given number of seconds ahead
func DeadlineFromNow(seconds int64) *big.Int {
	if seconds <= 0 {
		seconds = 1200
	}
	return big.NewInt(time.Now().Unix() + seconds)
}
