package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shardeum-globalswap/swapexec/internal/config"
	v2 "github.com/shardeum-globalswap/swapexec/internal/dex/v2"
	"github.com/shardeum-globalswap/swapexec/internal/executor"
	"github.com/shardeum-globalswap/swapexec/internal/helpers"
	"github.com/shardeum-globalswap/swapexec/internal/notify"
	"github.com/shardeum-globalswap/swapexec/internal/storage"
	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
	"github.com/shardeum-globalswap/swapexec/internal/trades"
)

func main() {
	var (
		tokenIn     = flag.String("in", "", "input token address (ignored with -native)")
		tokenOut    = flag.String("out", "", "output token address")
		amountIn    = flag.String("amount-in", "", "input amount in whole units, e.g. 1.5")
		amountOut   = flag.String("amount-out", "", "quoted/target output amount in whole units")
		exactOut    = flag.Bool("exact-out", false, "fix the output amount instead of the input")
		native      = flag.Bool("native", false, "fund the swap with the native coin")
		recipient   = flag.String("recipient", "", "recipient address (defaults to the signer)")
		slippage    = flag.String("slippage", "", "slippage tolerance, e.g. 50, 50bips or 0.5% (overrides config)")
		configPath  = flag.String("config", config.DefaultPath, "config file path")
		metricsAddr = flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9090")
	)
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	telemetry.Start()
	defer telemetry.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	telemetry.EnableDebug(cfg.DEBUG)

	if *slippage != "" {
		bips, err := helpers.ParseBips(*slippage)
		if err != nil {
			log.Fatalf("slippage: %v", err)
		}
		if err := helpers.ValidateSlippageBips(bips); err != nil {
			log.Fatalf("slippage: %v", err)
		}
		cfg.SLIPPAGE_BIPS = bips
	}

	profile, err := cfg.Profile()
	if err != nil {
		log.Fatalf("network profile: %v", err)
	}
	telemetry.Infof("network %s, chain id %s, router %s", profile.Name, profile.ChainID, profile.Router.Hex())

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, reg)
	}

	client, err := ethclient.DialContext(ctx, cfg.RPC_URL)
	if err != nil {
		log.Fatalf("rpc dial %s: %v", cfg.RPC_URL, err)
	}
	defer client.Close()

	registry, err := v2.NewRegistry(v2.Config{
		Factory:      profile.Factory,
		Router:       profile.Router,
		WETH:         profile.WETH,
		InitCodeHash: profile.InitCodeHash,
	})
	if err != nil {
		log.Fatalf("dex registry: %v", err)
	}

	key, signerAddr, err := helpers.ValidatePrivateKey(cfg.PRIVATE_KEY)
	if err != nil {
		log.Fatalf("private key: %v", err)
	}
	signer := executor.NewLocalSigner(key)
	telemetry.Infof("signing as %s", helpers.FormatAddress(signerAddr))

	hashes := storage.NewCachedCodeHashes(storage.NewMemoryCodeHashes(nil), client)
	generator := storage.NewGenerator(profile.Factory, profile.Router, profile.InitCodeHash, profile.AllPairsIndex, hashes)

	var recorder executor.Recorder = notify.LogRecorder{}
	if cfg.TELEGRAM_TOKEN != "" && cfg.TELEGRAM_CHAT_ID != 0 {
		tg, err := notify.NewTelegramRecorder(cfg.TELEGRAM_TOKEN, cfg.TELEGRAM_CHAT_ID)
		if err != nil {
			log.Fatalf("telegram recorder: %v", err)
		}
		recorder = tg
	}

	exec, err := executor.New(executor.Options{
		Backend:      client,
		Registry:     registry,
		Profile:      profile,
		Generator:    generator,
		Signer:       signer,
		Recorder:     recorder,
		Metrics:      metrics,
		SlippageBips: uint64(cfg.SLIPPAGE_BIPS),
	})
	if err != nil {
		log.Fatalf("executor: %v", err)
	}

	trade, err := buildTrade(profile, *tokenIn, *tokenOut, *amountIn, *amountOut, *exactOut, *native)
	if err != nil {
		log.Fatalf("trade: %v", err)
	}

	to := signerAddr
	if *recipient != "" {
		to, err = helpers.ValidateAddress(*recipient)
		if err != nil {
			log.Fatalf("recipient: %v", err)
		}
	}

	deadline := helpers.DeadlineFromNow(cfg.DEADLINE_SECONDS)
	hash, err := exec.Swap(ctx, trade, to, deadline)
	if err != nil {
		log.Fatalf("swap: %v", err)
	}
	fmt.Println(hash.Hex())
}

func buildTrade(profile config.NetworkProfile, tokenIn, tokenOut, amountIn, amountOut string, exactOut, native bool) (*trades.Trade, error) {
	out, err := helpers.ValidateAddress(tokenOut)
	if err != nil {
		return nil, fmt.Errorf("output token: %w", err)
	}

	in := profile.WETH
	if !native {
		in, err = helpers.ValidateAddress(tokenIn)
		if err != nil {
			return nil, fmt.Errorf("input token: %w", err)
		}
	}
	if err := helpers.ValidateTokenPair(in, out); err != nil {
		return nil, err
	}

	// Amounts are taken as 18-decimal units; use raw wei via the config file
	// for tokens with other decimals.
	wei := func(s, what string) (*big.Int, error) {
		if s == "" {
			return nil, fmt.Errorf("%s amount is required", what)
		}
		v, err := helpers.EthToWei(s)
		if err != nil {
			return nil, fmt.Errorf("%s amount: %w", what, err)
		}
		return v, nil
	}
	amtIn, err := wei(amountIn, "input")
	if err != nil {
		return nil, err
	}
	amtOut, err := wei(amountOut, "output")
	if err != nil {
		return nil, err
	}
	if err := helpers.ValidateAmount(amtIn); err != nil {
		return nil, fmt.Errorf("input amount: %w", err)
	}
	if err := helpers.ValidateAmount(amtOut); err != nil {
		return nil, fmt.Errorf("output amount: %w", err)
	}

	kind := trades.ExactInput
	if exactOut {
		kind = trades.ExactOutput
	}
	return &trades.Trade{
		Kind:      kind,
		AmountIn:  amtIn,
		AmountOut: amtOut,
		Path:      []common.Address{in, out},
		NativeIn:  native,
	}, nil
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	telemetry.Infof("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		telemetry.Warnf("metrics server: %v", err)
	}
}
