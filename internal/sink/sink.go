// Package sink delivers completed journey records to external systems.
package sink

import (
	"context"

	"github.com/rentmax/journeyd/internal/journey"
)

// Sink delivers one completed journey record to an external system.
// Delivery is attempted once per record per run; failures are reported to
// the caller and never retried here.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, rec *journey.Record) error
}
