// Package slog provides logging decorators for pressdoc services.
//
// Each decorator logs one line per operation with its duration and error,
// then returns the wrapped service's results unchanged.
package slog
