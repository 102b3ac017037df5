package domain

// OutcomeKind classifies how a user action ended
type OutcomeKind int

const (
	OutcomeSucceeded OutcomeKind = iota
	OutcomeRejected              // the server (or a missing link) turned the action down
	OutcomeCancelled             // confirmation mismatch or invalid input; no request sent
	OutcomeFailed                // transport failure or local error
)

// Outcome is the result of a user action, carrying the alert to show
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Err     error

	// Responded is true when the server answered, which means catalog and
	// ownership state may have changed and should be re-fetched.
	Responded bool
}

// IsError reports whether the outcome should be shown as an error alert
func (o Outcome) IsError() bool {
	return o.Kind != OutcomeSucceeded
}

// Succeeded builds a success outcome from a server message
func Succeeded(message string) Outcome {
	return Outcome{Kind: OutcomeSucceeded, Message: message, Responded: true}
}

// Cancelled builds an outcome for an action stopped before any request
func Cancelled(message string, err error) Outcome {
	return Outcome{Kind: OutcomeCancelled, Message: message, Err: err}
}
