package history

import (
	"context"
	"maps"
	"slices"
)

// Static is a Reader that serves fixed data. Useful in tests and for
// feeding observations gathered elsewhere.
type Static struct {
	Observations Observations
	Since        map[string][]string // ref -> emails
	Err          error
}

// FullHistory implements Reader.
func (s *Static) FullHistory(ctx context.Context) (Observations, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return maps.Clone(s.Observations), nil
}

// EmailsSince implements Reader.
func (s *Static) EmailsSince(ctx context.Context, ref string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if ref == "" {
		return s.Observations.Emails(), nil
	}
	return slices.Clone(s.Since[ref]), nil
}

var _ Reader = (*Static)(nil)
