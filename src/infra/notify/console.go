// Package notify talks to the operator on a terminal.
package notify

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Console implements tournaments.Notifier and tournaments.Confirmer over a
// line-oriented terminal. Every message is also logged.
type Console struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewConsole creates a console. in should be the same reader the command
// loop reads from, so confirmations consume the next input line.
func NewConsole(in *bufio.Reader, out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{in: in, out: out, logger: logger}
}

// Notify prints message on its own line.
func (c *Console) Notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("notify", zap.String("message", message))
	fmt.Fprintln(c.out, message)
}

// Confirm prints prompt and reads a yes/no answer. Anything but y or yes,
// including end of input, declines.
func (c *Console) Confirm(prompt string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		c.logger.Info("confirmation declined", zap.String("prompt", firstLine(prompt)), zap.Error(err))
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	ok := answer == "y" || answer == "yes"
	c.logger.Info("confirmation answered", zap.String("prompt", firstLine(prompt)), zap.Bool("confirmed", ok))
	return ok
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
