package transfer

import "fmt"

// Sides of a transfer, used to report which account a lookup failed on.
const (
	SideOrigin      = "origin"
	SideDestination = "destination"
)

// InvalidRequestError reports a malformed transfer request. The request was
// rejected before touching the gate or any storage; nothing happened and
// retrying the same request will fail the same way.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid transfer request: " + e.Reason
}

// AccountNotFoundError reports that one side of the transfer does not
// exist. The unit was rolled back; no balances changed and no record was
// written. Not retryable.
type AccountNotFoundError struct {
	Side   string
	Number string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s account %q not found", e.Side, e.Number)
}

// TransferFailedError reports a storage-level failure. The unit was rolled
// back, so no partial state persists and the whole operation is safe to
// retry.
type TransferFailedError struct {
	Reason string
	Err    error
}

func (e *TransferFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transfer failed: %s: %v", e.Reason, e.Err)
	}
	return "transfer failed: " + e.Reason
}

func (e *TransferFailedError) Unwrap() error {
	return e.Err
}
