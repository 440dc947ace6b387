package reconciler

import "github.com/agentstation/credits/pkg/errors"

// options holds reconciler configuration.
type options struct {
	minCommits int
}

// Option configures a Reconciler.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := &options{minCommits: 1}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithMinCommits sets how many commits an unknown email needs before it
// becomes a new person. Values below 1 are rejected: an email with no
// commits never creates a person.
func WithMinCommits(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return errors.NewValidationError("min_commits", n, "must be at least 1")
		}
		o.minCommits = n
		return nil
	}
}
