// Package logging builds the shared zap logger and keeps credentials out of
// log output. The admin account's password lives in the store in clear text,
// so anything that might carry it has to pass through Sanitize* first.
package logging

import "go.uber.org/zap"

// New returns the process-wide logger. Local environments get the
// development encoder, everything else the production JSON encoder.
func New(env string) (*zap.Logger, error) {
	if env == "local" || env == "test" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
