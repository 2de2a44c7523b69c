// Package logger constructs the process-wide structured logger.
package logger

import "go.uber.org/zap"

// New returns a zap logger configured for the given environment:
// human-readable development output for "dev", JSON production output
// otherwise. Callers should defer Sync on shutdown.
func New(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
