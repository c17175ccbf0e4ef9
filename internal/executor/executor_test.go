package executor

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/shardeum-globalswap/swapexec/internal/config"
	v2 "github.com/shardeum-globalswap/swapexec/internal/dex/v2"
	"github.com/shardeum-globalswap/swapexec/internal/storage"
	"github.com/shardeum-globalswap/swapexec/internal/trades"
)

// Well-known throwaway dev key, address 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266.
const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	testRouter    = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	testFactory   = common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	testWETH      = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	testUSDC      = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	testInitHash  = common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f")
	testRecipient = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	testDeadline  = big.NewInt(1_900_000_000)
)

// fakeBackend scripts the chain-client responses.
type fakeBackend struct {
	mu         sync.Mutex
	estimateFn func(ethereum.CallMsg) (uint64, error)
	callFn     func(ethereum.CallMsg) ([]byte, error)
	nonce      uint64
	sendErr    error
	sent       []*types.Transaction
}

func (f *fakeBackend) EstimateGas(_ context.Context, call ethereum.CallMsg) (uint64, error) {
	if f.estimateFn != nil {
		return f.estimateFn(call)
	}
	return 100_000, nil
}

func (f *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.callFn != nil {
		return f.callFn(call)
	}
	return nil, errors.New("execution reverted")
}

func (f *fakeBackend) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	f.sent = append(f.sent, tx)
	f.mu.Unlock()
	return nil
}

// revertError mimics a geth node's estimate/call failure with return data.
type revertError struct {
	msg  string
	data string
}

func (e *revertError) Error() string          { return e.msg }
func (e *revertError) ErrorData() interface{} { return e.data }

func newRevertError(reason string) *revertError {
	strT, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: strT}}.Pack(reason)
	data := append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...) // Error(string)
	return &revertError{msg: "execution reverted", data: hexutil.Encode(data)}
}

// rpcCodeError mimics an EIP-1193 provider error.
type rpcCodeError struct {
	code int
	msg  string
}

func (e *rpcCodeError) Error() string  { return e.msg }
func (e *rpcCodeError) ErrorCode() int { return e.code }

func testProfile() config.NetworkProfile {
	return config.NetworkProfile{
		Name:          "testnet",
		ChainID:       big.NewInt(8082),
		GasPriceWei:   big.NewInt(30_000_000_000),
		TxType:        1,
		AllPairsIndex: 1,
		Router:        testRouter,
		Factory:       testFactory,
		WETH:          testWETH,
		InitCodeHash:  testInitHash,
	}
}

func newTestExecutor(t *testing.T, backend *fakeBackend) *Executor {
	t.Helper()
	return newTestExecutorWithProfile(t, backend, testProfile())
}

func newTestExecutorWithProfile(t *testing.T, backend *fakeBackend, profile config.NetworkProfile) *Executor {
	t.Helper()

	registry, err := v2.NewRegistry(v2.Config{
		Factory:      testFactory,
		Router:       testRouter,
		WETH:         testWETH,
		InitCodeHash: testInitHash,
	})
	require.NoError(t, err)

	signer, err := NewLocalSignerFromHex(testKeyHex)
	require.NoError(t, err)

	generator := storage.NewGenerator(profile.Factory, profile.Router, profile.InitCodeHash, profile.AllPairsIndex, nil)

	exec, err := New(Options{
		Backend:      backend,
		Registry:     registry,
		Profile:      profile,
		Generator:    generator,
		Signer:       signer,
		SlippageBips: 50,
	})
	require.NoError(t, err)
	return exec
}

func testTrade() *trades.Trade {
	return &trades.Trade{
		Kind:      trades.ExactInput,
		AmountIn:  big.NewInt(1_000_000),
		AmountOut: big.NewInt(10_000),
		Path:      []common.Address{testUSDC, testWETH},
	}
}

func TestGasLimitMargin(t *testing.T) {
	require.Equal(t, uint64(110_000), gasLimitFor(100_000))
	require.Equal(t, uint64(23_100), gasLimitFor(21_000))
	require.Equal(t, uint64(1), gasLimitFor(1))
}

func TestSplitSignature(t *testing.T) {
	sig := make([]byte, 65)
	sig[31] = 0x01 // r = 1
	sig[63] = 0x02 // s = 2
	sig[64] = 0x01 // v = 1

	comps, err := SplitSignature(sig)
	require.NoError(t, err)
	require.Equal(t, int64(1), comps.R.Int64())
	require.Equal(t, int64(2), comps.S.Int64())
	require.Equal(t, int64(1), comps.V.Int64())

	_, err = SplitSignature(sig[:64])
	require.Error(t, err)
}

func TestSwapBroadcastsSignedAccessListTx(t *testing.T) {
	backend := &fakeBackend{nonce: 7}
	exec := newTestExecutor(t, backend)

	hash, err := exec.Swap(context.Background(), testTrade(), testRecipient, testDeadline)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	tx := backend.sent[0]
	require.Equal(t, hash, tx.Hash())
	require.Equal(t, uint8(types.AccessListTxType), tx.Type())
	require.Equal(t, uint64(7), tx.Nonce())
	require.Equal(t, uint64(110_000), tx.Gas())
	require.Equal(t, testRouter, *tx.To())
	require.Len(t, tx.AccessList(), 4)
	require.Zero(t, tx.ChainId().Cmp(big.NewInt(8082)))

	sender, err := types.Sender(types.NewEIP2930Signer(big.NewInt(8082)), tx)
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), sender)
}

func TestSwapLegacyProfileUsesLegacyEnvelope(t *testing.T) {
	backend := &fakeBackend{nonce: 3}
	profile := testProfile()
	profile.TxType = types.LegacyTxType
	exec := newTestExecutorWithProfile(t, backend, profile)

	_, err := exec.Swap(context.Background(), testTrade(), testRecipient, testDeadline)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	tx := backend.sent[0]
	require.Equal(t, uint8(types.LegacyTxType), tx.Type())
	require.Empty(t, tx.AccessList())
	require.Equal(t, uint64(110_000), tx.Gas())

	sender, err := types.Sender(types.NewEIP155Signer(big.NewInt(8082)), tx)
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), sender)
}

func TestSwapRejectsUnknownTxType(t *testing.T) {
	profile := testProfile()
	profile.TxType = 2 // dynamic-fee envelope is not supported here
	exec := newTestExecutorWithProfile(t, &fakeBackend{}, profile)

	_, err := exec.Swap(context.Background(), testTrade(), testRecipient, testDeadline)
	require.ErrorIs(t, err, ErrUnexpectedSwapFailure)
}

func TestSwapRejectsZeroRecipient(t *testing.T) {
	exec := newTestExecutor(t, &fakeBackend{})

	_, err := exec.Swap(context.Background(), testTrade(), common.Address{}, testDeadline)
	require.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestSwapRejectsMalformedTrade(t *testing.T) {
	exec := newTestExecutor(t, &fakeBackend{})

	trade := testTrade()
	trade.AmountIn = nil
	_, err := exec.Swap(context.Background(), trade, testRecipient, testDeadline)
	require.ErrorIs(t, err, ErrInvalidParameters)

	_, err = exec.Swap(context.Background(), testTrade(), testRecipient, nil)
	require.ErrorIs(t, err, ErrInvalidParameters)
}

func TestSwapAllCandidatesFail(t *testing.T) {
	backend := &fakeBackend{
		estimateFn: func(ethereum.CallMsg) (uint64, error) {
			return 0, errors.New("execution reverted")
		},
		callFn: func(ethereum.CallMsg) ([]byte, error) {
			return nil, newRevertError("UniswapV2Router: INSUFFICIENT_OUTPUT_AMOUNT")
		},
	}
	exec := newTestExecutor(t, backend)

	_, err := exec.Swap(context.Background(), testTrade(), testRecipient, testDeadline)
	require.ErrorIs(t, err, ErrNoViableCandidate)
	require.Contains(t, err.Error(), "slippage tolerance")
}

func TestSwapUserRejected(t *testing.T) {
	backend := &fakeBackend{sendErr: &rpcCodeError{code: 4001, msg: "User rejected the request."}}
	exec := newTestExecutor(t, backend)

	_, err := exec.Swap(context.Background(), testTrade(), testRecipient, testDeadline)
	require.ErrorIs(t, err, ErrUserRejected)
}

func TestSwapUnexpectedBroadcastFailure(t *testing.T) {
	backend := &fakeBackend{sendErr: errors.New("nonce too low")}
	exec := newTestExecutor(t, backend)

	_, err := exec.Swap(context.Background(), testTrade(), testRecipient, testDeadline)
	require.ErrorIs(t, err, ErrUnexpectedSwapFailure)
	require.Contains(t, err.Error(), "nonce too low")
}

func TestSwapNativeInputCarriesValue(t *testing.T) {
	backend := &fakeBackend{}
	exec := newTestExecutor(t, backend)

	trade := testTrade()
	trade.Path = []common.Address{testWETH, testUSDC}
	trade.NativeIn = true

	_, err := exec.Swap(context.Background(), trade, testRecipient, testDeadline)
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)
	require.Zero(t, backend.sent[0].Value().Cmp(trade.AmountIn))
}
