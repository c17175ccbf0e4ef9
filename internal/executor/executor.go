package executor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/shardeum-globalswap/swapexec/internal/config"
	v2 "github.com/shardeum-globalswap/swapexec/internal/dex/v2"
	"github.com/shardeum-globalswap/swapexec/internal/storage"
	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
	"github.com/shardeum-globalswap/swapexec/internal/trades"
)

// Backend is the chain-client subset the executor needs. *ethclient.Client
// satisfies it.
type Backend interface {
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Gas limit margin applied on top of the node's estimate.
const (
	gasMarginNumerator   = 110
	gasMarginDenominator = 100
)

// Executor runs the swap pipeline: candidate construction, concurrent gas
// estimation, candidate selection, access-list generation, manual signing,
// and broadcast.
type Executor struct {
	backend   Backend
	registry  *v2.Registry
	profile   config.NetworkProfile
	generator *storage.Generator
	signer    Signer
	recorder  Recorder
	metrics   *telemetry.Metrics

	slippageBips uint64
}

type Options struct {
	Backend      Backend
	Registry     *v2.Registry
	Profile      config.NetworkProfile
	Generator    *storage.Generator
	Signer       Signer
	Recorder     Recorder // optional
	Metrics      *telemetry.Metrics
	SlippageBips uint64
}

func New(opts Options) (*Executor, error) {
	if opts.Backend == nil || opts.Registry == nil || opts.Signer == nil {
		return nil, fmt.Errorf("executor: backend, registry and signer are required")
	}
	if opts.Generator == nil {
		return nil, fmt.Errorf("executor: access list generator is required")
	}
	return &Executor{
		backend:      opts.Backend,
		registry:     opts.Registry,
		profile:      opts.Profile,
		generator:    opts.Generator,
		signer:       opts.Signer,
		recorder:     opts.Recorder,
		metrics:      opts.Metrics,
		slippageBips: opts.SlippageBips,
	}, nil
}

// gasLimitFor pads the node's estimate by 10%, integer math.
func gasLimitFor(estimate uint64) uint64 {
	return estimate * gasMarginNumerator / gasMarginDenominator
}

// Swap executes one trade end to end and returns the broadcast transaction
// hash. Errors wrap one of the package sentinels.
func (e *Executor) Swap(ctx context.Context, trade *trades.Trade, recipient common.Address, deadline *big.Int) (common.Hash, error) {
	started := time.Now()

	if recipient == (common.Address{}) {
		return common.Hash{}, fmt.Errorf("%w: recipient is the zero address", ErrInvalidRecipient)
	}
	if err := trade.Validate(); err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if deadline == nil || deadline.Sign() <= 0 {
		return common.Hash{}, fmt.Errorf("%w: deadline must be set", ErrInvalidParameters)
	}

	candidates := trades.BuildCandidates(trade, e.slippageBips, recipient, deadline, e.registry.Router())
	if len(candidates) == 0 {
		return common.Hash{}, fmt.Errorf("%w: trade yields no router calls", ErrInvalidParameters)
	}

	from := e.signer.Address()
	outcomes := e.estimateAll(ctx, from, candidates)
	chosen, err := selectOutcome(outcomes)
	if err != nil {
		return common.Hash{}, err
	}
	telemetry.Infof("[executor] selected %s, estimate %d gas", chosen.Candidate.Method, chosen.Gas)

	signed, err := e.buildSigned(ctx, chosen)
	if err != nil {
		return common.Hash{}, err
	}
	e.metrics.ObserveBuildSeconds(time.Since(started).Seconds())

	if err := e.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, e.classifyBroadcast(err)
	}
	e.metrics.ObserveSubmitted()
	telemetry.Infof("[executor] broadcast %s nonce %d gas %d", signed.Hash().Hex(), signed.Nonce(), signed.Gas())

	e.record(ctx, Receipt{
		Hash:     signed.Hash(),
		Trade:    trade,
		Method:   chosen.Candidate.Method,
		GasLimit: signed.Gas(),
		Nonce:    signed.Nonce(),
	})
	return signed.Hash(), nil
}

// buildSigned assembles the access-list transaction for the chosen candidate
// and signs it by hand: digest, raw signature, then V/R/S spliced into the
// wire form. The recovered sender is checked against the signer before the
// transaction leaves the process.
func (e *Executor) buildSigned(ctx context.Context, chosen EstimationOutcome) (*types.Transaction, error) {
	args := chosen.Candidate.Args
	if len(args) < 4 {
		return nil, fmt.Errorf("%w: candidate arguments are malformed", ErrInvalidParameters)
	}
	path, ok := args[len(args)-3].([]common.Address)
	if !ok || len(path) < 2 {
		return nil, fmt.Errorf("%w: candidate path is malformed", ErrInvalidParameters)
	}
	nonce, err := e.backend.PendingNonceAt(ctx, e.signer.Address())
	if err != nil {
		return nil, fmt.Errorf("%w: fetch nonce: %v", ErrUnexpectedSwapFailure, err)
	}

	value := chosen.Candidate.Value
	if value == nil {
		value = new(big.Int)
	}
	target := chosen.Candidate.Target

	// The profile picks the envelope: legacy chains get a plain transaction,
	// access-list chains get type 1 with the generated list attached.
	var unsigned *types.Transaction
	var txSigner types.Signer
	switch e.profile.TxType {
	case types.AccessListTxType:
		accessList, err := e.generator.Generate(ctx, path[0], path[1], e.signer.Address())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedSwapFailure, err)
		}
		unsigned = types.NewTx(&types.AccessListTx{
			ChainID:    e.profile.ChainID,
			Nonce:      nonce,
			GasPrice:   e.profile.GasPriceWei,
			Gas:        gasLimitFor(chosen.Gas),
			To:         &target,
			Value:      value,
			Data:       chosen.Call.Data,
			AccessList: accessList,
		})
		txSigner = types.NewEIP2930Signer(e.profile.ChainID)
	case types.LegacyTxType:
		unsigned = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: e.profile.GasPriceWei,
			Gas:      gasLimitFor(chosen.Gas),
			To:       &target,
			Value:    value,
			Data:     chosen.Call.Data,
		})
		txSigner = types.NewEIP155Signer(e.profile.ChainID)
	default:
		return nil, fmt.Errorf("%w: unsupported transaction type %d", ErrUnexpectedSwapFailure, e.profile.TxType)
	}
	digest := txSigner.Hash(unsigned)
	sig, err := e.signer.SignDigest(ctx, digest)
	if err != nil {
		return nil, e.classifyBroadcast(err)
	}
	if _, err := SplitSignature(sig); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedSwapFailure, err)
	}

	signed, err := unsigned.WithSignature(txSigner, sig)
	if err != nil {
		return nil, fmt.Errorf("%w: attach signature: %v", ErrUnexpectedSwapFailure, err)
	}
	sender, err := types.Sender(txSigner, signed)
	if err != nil || sender != e.signer.Address() {
		return nil, fmt.Errorf("%w: signature does not recover to %s", ErrUnexpectedSwapFailure, e.signer.Address().Hex())
	}
	return signed, nil
}

// classifyBroadcast maps a signing or broadcast error onto the sentinel
// taxonomy.
func (e *Executor) classifyBroadcast(err error) error {
	if isUserRejection(err) {
		e.metrics.ObserveBroadcastFailure("rejected")
		return fmt.Errorf("%w: transaction rejected", ErrUserRejected)
	}
	if reason, ok := revertReason(err); ok {
		e.metrics.ObserveBroadcastFailure("revert")
		return fmt.Errorf("%w: %s", ErrUnexpectedSwapFailure, classifyRevert(reason))
	}
	e.metrics.ObserveBroadcastFailure("other")
	return fmt.Errorf("%w: %v", ErrUnexpectedSwapFailure, err)
}

// isUserRejection matches EIP-1193 error 4001 from wallet-backed signers and
// the message variants proxies turn it into.
func isUserRejection(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == 4001 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied")
}

func (e *Executor) record(ctx context.Context, r Receipt) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordSwap(ctx, r); err != nil {
		telemetry.Warnf("[executor] record swap %s: %v", r.Hash.Hex(), err)
	}
}
