// Package obslog constructs the process-wide structured logger, grounded
// on noah-isme-sma-adp-api/pkg/logger's zap setup (see SPEC_FULL.md
// AMBIENT STACK).
package obslog

import "go.uber.org/zap"

// New builds a zap.Logger: a development (console, debug-enabled) config
// when dev is true, a production (JSON, info-level) config otherwise.
func New(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
