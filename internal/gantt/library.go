package gantt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	StylesheetURL = "https://cdn.dhtmlx.com/gantt/8.0/dhtmlxgantt.css"
	ScriptURL     = "https://cdn.dhtmlx.com/gantt/8.0/dhtmlxgantt.js"

	DefaultLoadAttempts = 20
	DefaultLoadInterval = 50 * time.Millisecond
)

// ErrLibraryUnavailable means the widget library never became ready.
var ErrLibraryUnavailable = errors.New("gantt library unavailable")

var errNotReady = errors.New("gantt library not ready")

// Library bootstraps the widget's code.
type Library interface {
	Ready() bool
	InjectAssets(stylesheetURL, scriptURL string) error
}

// LoadLibrary returns at once when lib is ready. Otherwise it injects the
// assets and polls Ready up to attempts times, interval apart.
func LoadLibrary(ctx context.Context, lib Library, attempts uint, interval time.Duration) error {
	if lib == nil {
		return ErrLibraryUnavailable
	}
	if lib.Ready() {
		return nil
	}
	if attempts == 0 {
		attempts = DefaultLoadAttempts
	}
	if err := lib.InjectAssets(StylesheetURL, ScriptURL); err != nil {
		return fmt.Errorf("%w: inject assets: %v", ErrLibraryUnavailable, err)
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if lib.Ready() {
			return struct{}{}, nil
		}
		return struct{}{}, errNotReady
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(interval)),
		backoff.WithMaxTries(attempts),
		backoff.WithMaxElapsedTime(0),
	)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%w after %d attempts", ErrLibraryUnavailable, attempts)
	}
}
