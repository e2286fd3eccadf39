// Package dispatch runs the modes named by a resolved options.Plan.
package dispatch

import (
	"context"
	"errors"

	"miso/internal/options"
)

// Quantifier runs a quantification request.
type Quantifier interface {
	Invoke(ctx context.Context, req options.RunRequest) error
}

// Viewer prints an indexed annotation artifact.
type Viewer interface {
	Inspect(ctx context.Context, req options.ViewRequest) error
}

// Dispatcher invokes at most one call per requested mode.
type Dispatcher struct {
	quant  Quantifier
	viewer Viewer
}

// New constructs a Dispatcher. Either collaborator may be nil if the
// corresponding mode is never requested.
func New(quant Quantifier, viewer Viewer) *Dispatcher {
	return &Dispatcher{quant: quant, viewer: viewer}
}

// Dispatch runs quantification when plan.Run is set, then inspection when
// plan.View is set. Both may run in one invocation; an empty plan is a no-op.
// The first failure stops dispatch and is returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, plan options.Plan) error {
	if plan.Run != nil {
		if d.quant == nil {
			return errors.New("quantification engine not configured")
		}
		if err := d.quant.Invoke(ctx, *plan.Run); err != nil {
			return err
		}
	}
	if plan.View != nil {
		if d.viewer == nil {
			return errors.New("annotation inspector not configured")
		}
		if err := d.viewer.Inspect(ctx, *plan.View); err != nil {
			return err
		}
	}
	return nil
}
