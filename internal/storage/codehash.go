package storage

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
)

// CodeHashCache maps contract address to code hash. Implementations must be
// safe for concurrent readers; entries are effectively append-only.
type CodeHashCache interface {
	Get(addr common.Address) (common.Hash, bool)
	Set(addr common.Address, h common.Hash)
}

// MemoryCodeHashes is the in-process CodeHashCache.
type MemoryCodeHashes struct {
	mu sync.RWMutex
	m  map[common.Address]common.Hash
}

// NewMemoryCodeHashes seeds the cache; seed may be nil.
func NewMemoryCodeHashes(seed map[common.Address]common.Hash) *MemoryCodeHashes {
	m := make(map[common.Address]common.Hash, len(seed))
	for a, h := range seed {
		m[a] = h
	}
	return &MemoryCodeHashes{m: m}
}

func (c *MemoryCodeHashes) Get(addr common.Address) (common.Hash, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.m[addr]
	return h, ok
}

func (c *MemoryCodeHashes) Set(addr common.Address, h common.Hash) {
	c.mu.Lock()
	c.m[addr] = h
	c.mu.Unlock()
}

// CodeReader is the chain-client subset used to fill cache misses.
// *ethclient.Client satisfies it.
type CodeReader interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// HashSource resolves code hashes for access-list construction.
type HashSource interface {
	CodeHash(ctx context.Context, addr common.Address) (common.Hash, bool)
}

// CachedCodeHashes reads through the cache to the chain. Misses that fail to
// resolve (RPC error, no code at the address) are reported as unknown and not
// cached, so a later call can retry.
type CachedCodeHashes struct {
	cache  CodeHashCache
	reader CodeReader
}

func NewCachedCodeHashes(cache CodeHashCache, reader CodeReader) *CachedCodeHashes {
	return &CachedCodeHashes{cache: cache, reader: reader}
}

func (c *CachedCodeHashes) CodeHash(ctx context.Context, addr common.Address) (common.Hash, bool) {
	if h, ok := c.cache.Get(addr); ok {
		return h, true
	}
	if c.reader == nil {
		return common.Hash{}, false
	}
	code, err := c.reader.CodeAt(ctx, addr, nil)
	if err != nil {
		telemetry.Debugf("[storage] code lookup failed for %s: %v", addr.Hex(), err)
		return common.Hash{}, false
	}
	if len(code) == 0 {
		return common.Hash{}, false
	}
	h := crypto.Keccak256Hash(code)
	c.cache.Set(addr, h)
	return h, true
}
