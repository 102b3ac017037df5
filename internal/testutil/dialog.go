// Package testutil holds scripted stand-ins for the interactive pieces of
// the client, shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/mmcdole/folio/internal/domain"
)

// Dialog answers prompts from a script and records everything shown
type Dialog struct {
	mu sync.Mutex

	Answers  []domain.DialogResult // consumed in order; exhausted means dismissed
	Confirms []bool                // consumed in order; exhausted means false

	Prompts []domain.Prompt
	Alerts  []string
}

// NewDialog creates a dialog that answers prompts with the given values
func NewDialog(answers ...string) *Dialog {
	d := &Dialog{}
	for _, a := range answers {
		d.Answers = append(d.Answers, domain.Answered(a))
	}
	return d
}

func (d *Dialog) Prompt(_ context.Context, p domain.Prompt) domain.DialogResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Prompts = append(d.Prompts, p)
	if len(d.Answers) == 0 {
		return domain.Dismissed()
	}
	next := d.Answers[0]
	d.Answers = d.Answers[1:]
	return next
}

func (d *Dialog) Confirm(_ context.Context, message string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Prompts = append(d.Prompts, domain.Prompt{Message: message})
	if len(d.Confirms) == 0 {
		return false
	}
	next := d.Confirms[0]
	d.Confirms = d.Confirms[1:]
	return next
}

func (d *Dialog) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Alerts = append(d.Alerts, message)
}

// LastAlert returns the most recent alert, or ""
func (d *Dialog) LastAlert() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Alerts) == 0 {
		return ""
	}
	return d.Alerts[len(d.Alerts)-1]
}

// Opener records opened URLs and fails with Err when set
type Opener struct {
	mu     sync.Mutex
	Err    error
	Opened []string
}

func (o *Opener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.Opened = append(o.Opened, url)
	return nil
}
