package domain

import "context"

// Prompt describes a single question put to the user
type Prompt struct {
	Message string // Question text
	Secret  bool   // Hide input (passwords)
}

// DialogResult is the answer to a Prompt: either a confirmed value or a cancellation
type DialogResult struct {
	Value     string
	Cancelled bool
}

// Answered builds a confirmed result
func Answered(value string) DialogResult {
	return DialogResult{Value: value}
}

// Dismissed builds a cancelled result
func Dismissed() DialogResult {
	return DialogResult{Cancelled: true}
}

// Matches reports whether the result was confirmed with exactly expected (case-sensitive)
func (r DialogResult) Matches(expected string) bool {
	return !r.Cancelled && r.Value == expected
}

// Dialog asks the user for input and shows alerts.
// The TUI implements it with modals, the CLI with the terminal.
type Dialog interface {
	Prompt(ctx context.Context, p Prompt) DialogResult
	Confirm(ctx context.Context, message string) bool
	Alert(message string)
}

// URLOpener opens a URL in a new browsing context
type URLOpener interface {
	Open(url string) error
}
