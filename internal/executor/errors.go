package executor

import "errors"

// Sentinel errors returned by Swap. Callers branch with errors.Is; the
// wrapped message carries the detail.
var (
	// ErrInvalidParameters covers a malformed trade: nil amounts, short
	// path, bad deadline.
	ErrInvalidParameters = errors.New("invalid swap parameters")

	// ErrInvalidRecipient is returned when the recipient is missing or the
	// zero address.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrNoViableCandidate means every router call variant failed gas
	// estimation.
	ErrNoViableCandidate = errors.New("no viable swap candidate")

	// ErrUserRejected maps EIP-1193 code 4001 from the signer or node.
	ErrUserRejected = errors.New("user rejected the request")

	// ErrUnexpectedSwapFailure is the catch-all for broadcast failures that
	// fit no known category.
	ErrUnexpectedSwapFailure = errors.New("unexpected swap failure")
)
