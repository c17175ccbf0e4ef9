package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ethereum/go-ethereum/common"

	"github.com/shardeum-globalswap/swapexec/internal/helpers"
)

type Config struct {
	RPC_URL string `yaml:"RPC_URL"`
	NETWORK string `yaml:"NETWORK"`

	TELEGRAM_TOKEN   string `yaml:"TELEGRAM_TOKEN"`
	TELEGRAM_CHAT_ID int64  `yaml:"TELEGRAM_CHAT_ID"`

	// secret kept in YAML or env, never logged
	PRIVATE_KEY string `yaml:"PRIVATE_KEY"`

	SLIPPAGE_BIPS    int    `yaml:"SLIPPAGE_BIPS"`    // 50 = 0.50%
	DEADLINE_SECONDS int64  `yaml:"DEADLINE_SECONDS"` // swap deadline from now
	ALL_PAIRS_INDEX  uint64 `yaml:"ALL_PAIRS_INDEX"`  // factory allPairs slot index for the access list

	DEBUG bool `yaml:"DEBUG"`
}

const DefaultPath = "config.yml"

func Default() *Config {
	return &Config{
		RPC_URL: "http://127.0.0.1:8545",
		NETWORK: "shardeum",

		TELEGRAM_TOKEN:   "",
		TELEGRAM_CHAT_ID: 0,

		PRIVATE_KEY: "",

		SLIPPAGE_BIPS:    50,
		DEADLINE_SECONDS: 1200,
		ALL_PAIRS_INDEX:  1,

		DEBUG: false,
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RPC_URL"); v != "" {
		c.RPC_URL = v
	}
	if v := os.Getenv("NETWORK"); v != "" {
		c.NETWORK = v
	}
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.TELEGRAM_TOKEN = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.TELEGRAM_CHAT_ID = id
		}
	}
	if v := os.Getenv("PRIVATE_KEY"); v != "" {
		c.PRIVATE_KEY = v
	}
	if v := os.Getenv("SLIPPAGE_BIPS"); v != "" {
		// accepts plain bips or a percentage like "0.5%"
		if n, err := helpers.ParseBips(v); err == nil {
			c.SLIPPAGE_BIPS = n
		}
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.DEBUG = v == "true" || v == "1"
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	// create if missing
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnvOverrides()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

func (c *Config) Validate() error {
	if c.RPC_URL == "" {
		return fmt.Errorf("RPC_URL is required (set in config.yml or RPC_URL env)")
	}
	if _, ok := profiles[c.NETWORK]; !ok {
		return fmt.Errorf("unknown NETWORK %q", c.NETWORK)
	}
	if err := helpers.ValidateSlippageBips(c.SLIPPAGE_BIPS); err != nil {
		return fmt.Errorf("SLIPPAGE_BIPS: %w", err)
	}
	return nil
}

// NetworkProfile carries the per-chain literals the broadcast path needs.
// TxType 1 is the access-list transaction type.
type NetworkProfile struct {
	Name          string
	ChainID       *big.Int
	GasPriceWei   *big.Int
	TxType        uint8
	AllPairsIndex uint64

	Router       common.Address
	Factory      common.Address
	WETH         common.Address
	InitCodeHash common.Hash
}

func gwei(n int64) *big.Int { return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000)) }

var profiles = map[string]NetworkProfile{
	"shardeum": {
		Name:          "shardeum",
		ChainID:       big.NewInt(8082),
		GasPriceWei:   gwei(30),
		TxType:        1,
		AllPairsIndex: 1,
		Router:        common.HexToAddress("0x96A0bd0E2e6104c9B4DcbD1b7bAE80bD70611017"),
		Factory:       common.HexToAddress("0x3dDccE2C5e57B09045461Af8a981d004fb8C4FBd"),
		WETH:          common.HexToAddress("0xa80D5d2D5e57B09045461Af8a981d004fb8C22Aa"), // WSHM
		InitCodeHash:  common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f"),
	},
	"ethereum": {
		Name:          "ethereum",
		ChainID:       big.NewInt(1),
		GasPriceWei:   gwei(20),
		TxType:        1,
		AllPairsIndex: 1,
		Router:        common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"), // Uniswap V2
		Factory:       common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"), // Uniswap V2
		WETH:          common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		InitCodeHash:  common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f"),
	},
}

// Profile resolves the network preset named by cfg, applying config overrides.
func (c *Config) Profile() (NetworkProfile, error) {
	p, ok := profiles[c.NETWORK]
	if !ok {
		return NetworkProfile{}, fmt.Errorf("unknown NETWORK %q", c.NETWORK)
	}
	if c.ALL_PAIRS_INDEX != 0 {
		p.AllPairsIndex = c.ALL_PAIRS_INDEX
	}
	return p, nil
}
