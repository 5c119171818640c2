package port

import (
	"context"
)

// Scanner requests an immediate out-of-band scan sweep
type Scanner interface {
	// TriggerScan asks for a sweep as soon as possible. It does not
	// wait for the sweep to finish.
	TriggerScan(ctx context.Context) error
}
