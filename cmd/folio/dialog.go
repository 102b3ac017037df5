package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmcdole/folio/internal/domain"
	"golang.org/x/term"
)

// terminalDialog asks questions on the terminal, one line per answer.
// Secret prompts read without echo when stdin is a terminal.
type terminalDialog struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // -1 when input is not a terminal
}

func newTerminalDialog(in io.Reader, out io.Writer) *terminalDialog {
	d := &terminalDialog{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		d.fd = int(f.Fd())
	}
	return d
}

// Prompt reads one answer. End of input or an interrupt dismisses the prompt.
func (d *terminalDialog) Prompt(ctx context.Context, p domain.Prompt) domain.DialogResult {
	fmt.Fprintf(d.out, "%s ", p.Message)

	var line string
	var err error
	if p.Secret && d.fd >= 0 {
		var b []byte
		b, err = term.ReadPassword(d.fd)
		fmt.Fprintln(d.out) // Add newline after hidden input
		line = string(b)
	} else {
		line, err = d.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
	}

	if err != nil || ctx.Err() != nil {
		fmt.Fprintln(d.out)
		return domain.Dismissed()
	}
	return domain.Answered(strings.TrimRight(line, "\r\n"))
}

// Confirm asks a yes/no question; anything but y or yes declines
func (d *terminalDialog) Confirm(ctx context.Context, message string) bool {
	answer := d.Prompt(ctx, domain.Prompt{Message: message + " [y/N]"})
	if answer.Cancelled {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer.Value)) {
	case "y", "yes":
		return true
	}
	return false
}

func (d *terminalDialog) Alert(message string) {
	if message == "" {
		return
	}
	fmt.Fprintln(d.out, message)
}
