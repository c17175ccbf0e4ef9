package executor

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/shardeum-globalswap/swapexec/internal/telemetry"
	"github.com/shardeum-globalswap/swapexec/internal/trades"
)

// EstimationOutcome records one candidate's gas estimation attempt. Outcomes
// are index-aligned with the candidate list they were built from.
type EstimationOutcome struct {
	Candidate trades.Candidate
	Call      ethereum.CallMsg
	Gas       uint64
	Err       error
	Message   string
}

// OK reports whether the candidate passed estimation.
func (o EstimationOutcome) OK() bool {
	return o.Err == nil
}

// estimateAll estimates every candidate concurrently and returns outcomes in
// candidate order. Failed estimates are replayed with eth_call to produce a
// human-readable diagnosis.
func (e *Executor) estimateAll(ctx context.Context, from common.Address, candidates []trades.Candidate) []EstimationOutcome {
	outcomes := make([]EstimationOutcome, len(candidates))

	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand trades.Candidate) {
			defer wg.Done()
			outcomes[i] = e.estimateOne(ctx, from, cand)
		}(i, cand)
	}
	wg.Wait()

	for i := range outcomes {
		o := &outcomes[i]
		e.metrics.ObserveEstimation(o.OK())
		if o.OK() {
			telemetry.Debugf("[executor] candidate %d (%s): %d gas", i, o.Candidate.Method, o.Gas)
		} else {
			telemetry.Debugf("[executor] candidate %d (%s) failed: %s", i, o.Candidate.Method, o.Message)
		}
	}
	return outcomes
}

func (e *Executor) estimateOne(ctx context.Context, from common.Address, cand trades.Candidate) EstimationOutcome {
	out := EstimationOutcome{Candidate: cand}

	data, err := e.registry.Pack(cand.Method, cand.Args...)
	if err != nil {
		out.Err = err
		out.Message = "The transaction could not be encoded: " + err.Error()
		return out
	}

	target := cand.Target
	out.Call = ethereum.CallMsg{
		From:  from,
		To:    &target,
		Value: cand.Value,
		Data:  data,
	}

	gas, err := e.backend.EstimateGas(ctx, out.Call)
	if err != nil {
		out.Err = err
		out.Message = e.diagnose(ctx, out.Call, err)
		return out
	}
	out.Gas = gas
	return out
}
