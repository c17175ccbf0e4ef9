package executor

import (
	"errors"
	"strings"
	"testing"
)

func ok(gas uint64) EstimationOutcome {
	return EstimationOutcome{Gas: gas}
}

func failed(msg string) EstimationOutcome {
	return EstimationOutcome{Err: errors.New("estimate failed"), Message: msg}
}

func TestSelectOutcome(t *testing.T) {
	cases := []struct {
		name     string
		outcomes []EstimationOutcome
		wantGas  uint64
		wantErr  bool
		wantMsg  string
	}{
		{
			name:     "both succeed takes the first",
			outcomes: []EstimationOutcome{ok(100), ok(200)},
			wantGas:  100,
		},
		{
			name:     "first fails second succeeds",
			outcomes: []EstimationOutcome{failed("slippage"), ok(200)},
			wantGas:  200,
		},
		{
			name:     "single success",
			outcomes: []EstimationOutcome{ok(150)},
			wantGas:  150,
		},
		{
			name:     "success shadowed by failing successor",
			outcomes: []EstimationOutcome{ok(100), failed("fee on transfer")},
			wantErr:  true,
			wantMsg:  "fee on transfer",
		},
		{
			name:     "all fail surfaces last message",
			outcomes: []EstimationOutcome{failed("first"), failed("second")},
			wantErr:  true,
			wantMsg:  "second",
		},
		{
			name:     "empty",
			outcomes: nil,
			wantErr:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chosen, err := selectOutcome(tc.outcomes)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !errors.Is(err, ErrNoViableCandidate) {
					t.Fatalf("error = %v, want ErrNoViableCandidate", err)
				}
				if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
					t.Fatalf("error %q does not carry %q", err, tc.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if chosen.Gas != tc.wantGas {
				t.Fatalf("gas = %d, want %d", chosen.Gas, tc.wantGas)
			}
		})
	}
}
