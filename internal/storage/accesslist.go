package storage

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
)

// Storage layout constants. Tokens follow the OpenZeppelin ERC20 layout,
// pairs and the factory follow UniswapV2.
const (
	erc20BalancesSlot    = 0
	erc20AllowancesSlot  = 1
	erc20TotalSupplySlot = 2

	pairToken0Slot   = 6
	pairToken1Slot   = 7
	pairReservesSlot = 8
	pairKLastSlot    = 11
	pairLockSlot     = 12

	factoryFeeToSlot    = 0
	factoryGetPairSlot  = 2
	factoryAllPairsSlot = 3
)

// Generator produces the EIP-2930 access list for a two-token swap through
// the configured router/factory pair. Output is deterministic: identical
// inputs yield byte-identical lists.
type Generator struct {
	factory       common.Address
	router        common.Address
	initCodeHash  common.Hash
	allPairsIndex uint64
	hashes        HashSource
}

func NewGenerator(factory, router common.Address, initCodeHash common.Hash, allPairsIndex uint64, hashes HashSource) *Generator {
	return &Generator{
		factory:       factory,
		router:        router,
		initCodeHash:  initCodeHash,
		allPairsIndex: allPairsIndex,
		hashes:        hashes,
	}
}

// Generate returns exactly four entries, in order: pair, tokenA, tokenB,
// factory. Each entry carries the derived mapping keys the swap will touch,
// a few fixed low-index layout slots, and, when the code hash is known, the
// contract's code hash as a final pseudo-slot for access pricing.
func (g *Generator) Generate(ctx context.Context, tokenA, tokenB, sender common.Address) (types.AccessList, error) {
	pair, ok := PairAddress(tokenA, tokenB, g.factory, g.initCodeHash)
	if !ok {
		return nil, fmt.Errorf("derive pair address for %s/%s: init code hash unavailable", tokenA.Hex(), tokenB.Hex())
	}

	list := types.AccessList{
		g.pairEntry(ctx, pair),
		g.tokenEntry(ctx, tokenA, sender),
		g.tokenEntry(ctx, tokenB, sender),
		g.factoryEntry(ctx, tokenA, tokenB),
	}
	telemetry.Debugf("[storage] access list for %s/%s: pair=%s, %d entries",
		tokenA.Hex(), tokenB.Hex(), pair.Hex(), len(list))
	return list, nil
}

func (g *Generator) pairEntry(ctx context.Context, pair common.Address) types.AccessTuple {
	keys := []common.Hash{
		slotWord(pairToken0Slot),
		slotWord(pairToken1Slot),
		slotWord(pairReservesSlot),
		slotWord(pairKLastSlot),
		slotWord(pairLockSlot),
	}
	return types.AccessTuple{Address: pair, StorageKeys: g.withCodeHash(ctx, pair, keys)}
}

func (g *Generator) tokenEntry(ctx context.Context, token, sender common.Address) types.AccessTuple {
	keys := []common.Hash{
		// sender balance and the zero-address balance the pair's reserve
		// bookkeeping touches
		MappingKey(AddressWord(sender), erc20BalancesSlot),
		MappingKey(AddressWord(common.Address{}), erc20BalancesSlot),
		// router spending allowance granted by the sender
		NestedMappingKey(AddressWord(sender), AddressWord(g.router), erc20AllowancesSlot),
		slotWord(erc20BalancesSlot),
		slotWord(erc20AllowancesSlot),
		slotWord(erc20TotalSupplySlot),
	}
	return types.AccessTuple{Address: token, StorageKeys: g.withCodeHash(ctx, token, keys)}
}

func (g *Generator) factoryEntry(ctx context.Context, tokenA, tokenB common.Address) types.AccessTuple {
	keys := []common.Hash{
		// getPair is recorded in both directions
		NestedMappingKey(AddressWord(tokenA), AddressWord(tokenB), factoryGetPairSlot),
		NestedMappingKey(AddressWord(tokenB), AddressWord(tokenA), factoryGetPairSlot),
		// allPairs registry entry; the index should track the factory's pair
		// count but is fixed per network profile in the default flow
		ArrayElementKey(g.allPairsIndex, factoryAllPairsSlot),
		slotWord(factoryFeeToSlot),
		slotWord(factoryAllPairsSlot),
	}
	return types.AccessTuple{Address: g.factory, StorageKeys: g.withCodeHash(ctx, g.factory, keys)}
}

func (g *Generator) withCodeHash(ctx context.Context, addr common.Address, keys []common.Hash) []common.Hash {
	if g.hashes == nil {
		return keys
	}
	if h, ok := g.hashes.CodeHash(ctx, addr); ok {
		keys = append(keys, h)
	}
	return keys
}
