// Package surge implements a build pipeline that aggregates domain lists and
// filter rules from many text sources and emits deduplicated, sorted rule
// files for traffic-routing tools.
package surge

import (
	"context"

	"go.uber.org/zap"
)

// Version is the current version of surge-build.
const Version = "1.2.0"

// Service is the common service abstraction in this module.
type Service interface {
	// ZapField returns a [zap.Field] that identifies the service.
	ZapField() zap.Field

	// Start starts the service.
	Start(ctx context.Context) error

	// Stop stops the service.
	Stop() error
}
