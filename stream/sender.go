package stream

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// DefaultLineDelay paces one command per second: the robot executes each
// move synchronously and buffers very little input.
const DefaultLineDelay = time.Second

// Sender streams a program to the robot line by line.
type Sender struct {
	port   Port
	delay  time.Duration
	clk    clock.Clock
	logger golog.Logger
}

// NewSender wraps an open port. The clock is injectable so tests run
// without waiting out the pacing delays.
func NewSender(port Port, delay time.Duration, clk clock.Clock, logger golog.Logger) *Sender {
	if delay <= 0 {
		delay = DefaultLineDelay
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Sender{port: port, delay: delay, clk: clk, logger: logger}
}

// Send writes every non-blank line of the program to the port, waiting the
// pacing delay between lines. It stops early if ctx is canceled.
func (s *Sender) Send(ctx context.Context, program io.Reader) error {
	sc := bufio.NewScanner(program)
	sent := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if sent > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.clk.After(s.delay):
			}
		}
		if _, err := io.WriteString(s.port, line+"\n"); err != nil {
			return errors.Wrapf(err, "sending line %q", line)
		}
		s.logger.Debugw("sent", "line", line)
		sent++
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "reading program")
	}
	s.logger.Infow("program sent", "lines", sent)
	return nil
}

// Close closes the underlying port.
func (s *Sender) Close() error {
	return s.port.Close()
}
