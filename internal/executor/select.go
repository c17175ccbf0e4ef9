package executor

import (
	"fmt"
)

// selectOutcome picks the candidate to broadcast. A candidate is chosen only
// when it estimated successfully and is not shadowing a failing successor:
// the first outcome that succeeded and is either last or followed by another
// success wins. With nothing selectable, the last failure's diagnosis is
// surfaced.
func selectOutcome(outcomes []EstimationOutcome) (EstimationOutcome, error) {
	for i, o := range outcomes {
		if !o.OK() {
			continue
		}
		if i == len(outcomes)-1 || outcomes[i+1].OK() {
			return o, nil
		}
	}

	var lastFailure string
	for _, o := range outcomes {
		if !o.OK() {
			lastFailure = o.Message
		}
	}
	if lastFailure == "" {
		return EstimationOutcome{}, fmt.Errorf("%w: no candidates estimated", ErrNoViableCandidate)
	}
	return EstimationOutcome{}, fmt.Errorf("%w: %s", ErrNoViableCandidate, lastFailure)
}
