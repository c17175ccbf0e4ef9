package executor

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs 32-byte transaction digests. SignDigest returns the 65-byte
// compact signature r||s||v with v in {0,1}.
type Signer interface {
	Address() common.Address
	SignDigest(ctx context.Context, digest common.Hash) ([]byte, error)
}

// SignatureComponents is a compact signature split into the wire fields of
// an EIP-2930 transaction.
type SignatureComponents struct {
	R *big.Int
	S *big.Int
	V *big.Int
}

// SplitSignature decomposes a 65-byte r||s||v signature.
func SplitSignature(sig []byte) (SignatureComponents, error) {
	if len(sig) != crypto.SignatureLength {
		return SignatureComponents{}, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	return SignatureComponents{
		R: new(big.Int).SetBytes(sig[:32]),
		S: new(big.Int).SetBytes(sig[32:64]),
		V: new(big.Int).SetBytes(sig[64:65]),
	}, nil
}

// LocalSigner signs with an in-process secp256k1 key.
type LocalSigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

func NewLocalSigner(key *ecdsa.PrivateKey) *LocalSigner {
	return &LocalSigner{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
}

// NewLocalSignerFromHex parses a hex private key, with or without the 0x
// prefix.
func NewLocalSignerFromHex(hexKey string) (*LocalSigner, error) {
	if len(hexKey) >= 2 && hexKey[0] == '0' && (hexKey[1] == 'x' || hexKey[1] == 'X') {
		hexKey = hexKey[2:]
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return NewLocalSigner(key), nil
}

func (s *LocalSigner) Address() common.Address {
	return s.addr
}

func (s *LocalSigner) SignDigest(_ context.Context, digest common.Hash) ([]byte, error) {
	return crypto.Sign(digest.Bytes(), s.key)
}
