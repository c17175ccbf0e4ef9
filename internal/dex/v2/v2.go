package v2

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	Factory      common.Address
	Router       common.Address
	WETH         common.Address
	InitCodeHash common.Hash
}

// Registry holds the router/factory wiring for one V2-style DEX deployment.
type Registry struct {
	mu        sync.RWMutex
	cfg       Config
	routerABI abi.ABI
}

func NewRegistry(cfg Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	parsed, err := abi.JSON(strings.NewReader(RouterABI))
	if err != nil {
		return nil, fmt.Errorf("parse router ABI: %w", err)
	}
	return &Registry{cfg: cfg, routerABI: parsed}, nil
}

func (r *Registry) Config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

func (r *Registry) Router() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Router
}

func (r *Registry) Factory() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Factory
}

func (r *Registry) WETH() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.WETH
}

func (r *Registry) InitCodeHash() common.Hash {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.InitCodeHash
}

// Pack encodes a router call by method name.
func (r *Registry) Pack(method string, args ...any) ([]byte, error) {
	return r.routerABI.Pack(method, args...)
}

func (cfg Config) Validate() error {
	if (cfg.Factory == (common.Address{})) || (cfg.Router == (common.Address{})) || (cfg.WETH == (common.Address{})) {
		return fmt.Errorf("v2.Config: factory/router/WETH must be set")
	}
	if cfg.InitCodeHash == (common.Hash{}) {
		return fmt.Errorf("v2.Config: pair init code hash must be set")
	}
	return nil
}

// RouterABI carries only the swap fragments the executor packs.
const RouterABI = `[
	{"inputs":[
		{"internalType":"uint256","name":"amountIn","type":"uint256"},
		{"internalType":"uint256","name":"amountOutMin","type":"uint256"},
		{"internalType":"address[]","name":"path","type":"address[]"},
		{"internalType":"address","name":"to","type":"address"},
		{"internalType":"uint256","name":"deadline","type":"uint256"}],
	 "name":"swapExactTokensForTokens",
	 "outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],
	 "stateMutability":"nonpayable","type":"function"},

	{"inputs":[
		{"internalType":"uint256","name":"amountIn","type":"uint256"},
		{"internalType":"uint256","name":"amountOutMin","type":"uint256"},
		{"internalType":"address[]","name":"path","type":"address[]"},
		{"internalType":"address","name":"to","type":"address"},
		{"internalType":"uint256","name":"deadline","type":"uint256"}],
	 "name":"swapExactTokensForTokensSupportingFeeOnTransferTokens",
	 "outputs":[],
	 "stateMutability":"nonpayable","type":"function"},

	{"inputs":[
		{"internalType":"uint256","name":"amountOut","type":"uint256"},
		{"internalType":"uint256","name":"amountInMax","type":"uint256"},
		{"internalType":"address[]","name":"path","type":"address[]"},
		{"internalType":"address","name":"to","type":"address"},
		{"internalType":"uint256","name":"deadline","type":"uint256"}],
	 "name":"swapTokensForExactTokens",
	 "outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],
	 "stateMutability":"nonpayable","type":"function"},

	{"inputs":[
		{"internalType":"uint256","name":"amountOutMin","type":"uint256"},
		{"internalType":"address[]","name":"path","type":"address[]"},
		{"internalType":"address","name":"to","type":"address"},
		{"internalType":"uint256","name":"deadline","type":"uint256"}],
	 "name":"swapExactETHForTokens",
	 "outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],
	 "stateMutability":"payable","type":"function"},

	{"inputs":[
		{"internalType":"uint256","name":"amountOutMin","type":"uint256"},
		{"internalType":"address[]","name":"path","type":"address[]"},
		{"internalType":"address","name":"to","type":"address"},
		{"internalType":"uint256","name":"deadline","type":"uint256"}],
	 "name":"swapExactETHForTokensSupportingFeeOnTransferTokens",
	 "outputs":[],
	 "stateMutability":"payable","type":"function"},

	{"inputs":[
		{"internalType":"uint256","name":"amountOut","type":"uint256"},
		{"internalType":"address[]","name":"path","type":"address[]"},
		{"internalType":"address","name":"to","type":"address"},
		{"internalType":"uint256","name":"deadline","type":"uint256"}],
	 "name":"swapETHForExactTokens",
	 "outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],
	 "stateMutability":"payable","type":"function"}
]`
