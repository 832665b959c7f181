// internal/clipboard/control.go
package clipboard

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfirmDuration is how long a control stays confirmed after a copy.
const ConfirmDuration = 2000 * time.Millisecond

// ErrClosed is logged when a closed control is asked to copy.
var ErrClosed = errors.New("copy control closed")

// Writer is the clipboard collaborator.
type Writer interface {
	WriteText(text string) error
}

// Timer is the part of *time.Timer the control needs.
type Timer interface {
	Stop() bool
}

// Clock schedules the revert of the confirmed state.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type State int

const (
	StateDefault State = iota
	StateConfirmed
)

func (s State) String() string {
	if s == StateConfirmed {
		return "confirmed"
	}
	return "default"
}

// Control copies one fixed text and tracks the transient confirmation.
type Control struct {
	text     string
	writer   Writer
	clock    Clock
	onChange func(State)
	logger   zerolog.Logger

	mu     sync.Mutex
	state  State
	timer  Timer
	gen    uint64
	closed bool
}

type Option func(*Control)

func WithClock(clock Clock) Option {
	return func(c *Control) {
		c.clock = clock
	}
}

// WithOnChange registers f to be called after every state transition.
func WithOnChange(f func(State)) Option {
	return func(c *Control) {
		c.onChange = f
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Control) {
		c.logger = logger
	}
}

func NewControl(text string, w Writer, opts ...Option) *Control {
	c := &Control{
		text:   text,
		writer: w,
		clock:  realClock{},
		logger: log.With().Str("component", "clipboard").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Text is the payload the control copies.
func (c *Control) Text() string {
	return c.text
}

func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Copy writes the payload to the clipboard and reports whether it succeeded.
// On success the control is confirmed for ConfirmDuration, restarting the
// window if it already was. On failure the state is left as it was.
func (c *Control) Copy() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Warn().Err(ErrClosed).Msg("copy ignored")
		return false
	}
	c.mu.Unlock()

	if err := c.write(); err != nil {
		c.logger.Error().Err(err).Msg("failed to copy text")
		return false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return true
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	changed := c.state != StateConfirmed
	c.state = StateConfirmed
	c.timer = c.clock.AfterFunc(ConfirmDuration, func() { c.revert(gen) })
	c.mu.Unlock()

	if changed {
		c.notify(StateConfirmed)
	}
	return true
}

func (c *Control) write() (err error) {
	if c.writer == nil {
		return errors.New("no clipboard writer")
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("clipboard writer panicked")
		}
	}()
	return c.writer.WriteText(c.text)
}

// revert only applies to the timer of the latest copy.
func (c *Control) revert(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.state == StateDefault {
		c.mu.Unlock()
		return
	}
	c.state = StateDefault
	c.timer = nil
	c.mu.Unlock()

	c.notify(StateDefault)
}

func (c *Control) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// Close cancels a pending revert. The control ignores further copies.
func (c *Control) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
