package app

import (
	"context"

	"github.com/agentstation/credits/pkg/history"
)

// lazyReader defers opening the repository until history is first read,
// so commands that only touch the registry work outside a checkout.
type lazyReader struct {
	app *App
}

var _ history.Reader = lazyReader{}

// FullHistory implements history.Reader.
func (l lazyReader) FullHistory(ctx context.Context) (history.Observations, error) {
	r, err := l.app.Reader()
	if err != nil {
		return nil, err
	}
	return r.FullHistory(ctx)
}

// EmailsSince implements history.Reader.
func (l lazyReader) EmailsSince(ctx context.Context, ref string) ([]string, error) {
	r, err := l.app.Reader()
	if err != nil {
		return nil, err
	}
	return r.EmailsSince(ctx, ref)
}
