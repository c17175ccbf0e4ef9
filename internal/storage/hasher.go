package storage

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Storage-key derivation for Solidity layouts. A mapping value for key k under
// base slot s lives at keccak(pad32(k) ++ pad32(s)); nested mappings chain the
// derivation; dynamic array element n lives at keccak(pad32(s)) + n.

// MappingKey returns the storage key of mapping[key] rooted at slot.
func MappingKey(key common.Hash, slot uint64) common.Hash {
	return crypto.Keccak256Hash(key.Bytes(), slotWord(slot).Bytes())
}

// NestedMappingKey returns the storage key of mapping[outer][inner] rooted at
// slot. Note the asymmetry: swapping outer and inner yields a different key.
func NestedMappingKey(outer, inner common.Hash, slot uint64) common.Hash {
	return crypto.Keccak256Hash(inner.Bytes(), MappingKey(outer, slot).Bytes())
}

// ArrayElementKey returns the storage key of array[index] rooted at slot.
// The addition is unsigned 256-bit with wraparound, matching the EVM.
func ArrayElementKey(index uint64, slot uint64) common.Hash {
	base := crypto.Keccak256Hash(slotWord(slot).Bytes())
	k := new(uint256.Int).SetBytes(base.Bytes())
	k.AddUint64(k, index)
	return common.Hash(k.Bytes32())
}

// PairAddress derives the CREATE2 address of the V2 pair for the two tokens.
// Token order does not matter; the pair contract sorts its tokens and so do
// we. Returns false when the init code hash is unknown or the tokens are not
// a valid pair.
func PairAddress(tokenA, tokenB, factory common.Address, initCodeHash common.Hash) (common.Address, bool) {
	if tokenA == tokenB || initCodeHash == (common.Hash{}) {
		return common.Address{}, false
	}
	token0, token1 := SortTokens(tokenA, tokenB)
	salt := crypto.Keccak256Hash(token0.Bytes(), token1.Bytes())
	return crypto.CreateAddress2(factory, salt, initCodeHash.Bytes()), true
}

// SortTokens orders two token addresses ascending, the pair-contract convention.
func SortTokens(a, b common.Address) (common.Address, common.Address) {
	if a.Cmp(b) > 0 {
		return b, a
	}
	return a, b
}

// AddressWord left-pads an address into a 32-byte storage word.
func AddressWord(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

func slotWord(slot uint64) common.Hash {
	return common.BytesToHash(new(uint256.Int).SetUint64(slot).Bytes())
}
