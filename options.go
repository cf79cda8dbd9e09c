package assist

import (
	"github.com/rs/zerolog"

	"github.com/streetlab/assist/pkg/editor"
	"github.com/streetlab/assist/pkg/errors"
	"github.com/streetlab/assist/pkg/events"
	"github.com/streetlab/assist/pkg/exceptions"
	"github.com/streetlab/assist/pkg/logging"
	"github.com/streetlab/assist/pkg/persist"
	"github.com/streetlab/assist/pkg/rules"
)

// DefaultRetryBudget is how many times a fix attempts to find a missing
// entity before giving up on it.
const DefaultRetryBudget = 10

// Option is a function that configures an Analyzer session.
type Option func(*config) error

type config struct {
	editor         editor.Editor
	corrector      rules.Corrector
	variant        rules.Variant
	broker         *events.Broker
	logger         *zerolog.Logger
	retryBudget    int
	kv             persist.KV
	exceptionStore *exceptions.Store
}

// WithEditor sets the host editor the session reads from and mutates.
// Required.
func WithEditor(ed editor.Editor) Option {
	return func(c *config) error {
		c.editor = ed
		return nil
	}
}

// WithRules sets the rule engine. Defaults to the built-in English
// pack.
func WithRules(r rules.Corrector) Option {
	return func(c *config) error {
		c.corrector = r
		return nil
	}
}

// WithVariant sets the rule variant names are corrected under.
func WithVariant(v rules.Variant) Option {
	return func(c *config) error {
		c.variant = v
		return nil
	}
}

// WithBroker sets the event broker. By default the session creates its
// own.
func WithBroker(b *events.Broker) Option {
	return func(c *config) error {
		c.broker = b
		return nil
	}
}

// WithLogger sets the session logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithRetryBudget sets how many attempts a fix makes before reporting
// a missing entity as failed.
func WithRetryBudget(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewConfigError("assist", "retry budget must be at least 1", nil)
		}
		c.retryBudget = n
		return nil
	}
}

// WithPersistence sets the KV backend the exception store persists to.
// Without one the exception list is session-only.
func WithPersistence(kv persist.KV) Option {
	return func(c *config) error {
		c.kv = kv
		return nil
	}
}

// WithExceptionStore sets a pre-built exception store, replacing the
// session's own. The store's broker should be the session's broker or
// exception events will bypass session subscribers.
func WithExceptionStore(s *exceptions.Store) Option {
	return func(c *config) error {
		c.exceptionStore = s
		return nil
	}
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{
		variant:     rules.DefaultVariant,
		retryBudget: DefaultRetryBudget,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.editor == nil {
		return nil, errors.NewConfigError("assist", "an editor is required", nil)
	}
	if c.corrector == nil {
		c.corrector = rules.Default()
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	if c.broker == nil {
		c.broker = events.NewBroker(c.logger)
	}

	return c, nil
}
