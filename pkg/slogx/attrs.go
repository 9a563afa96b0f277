// Package slogx provides small helpers for building log/slog attributes
// used throughout the client and streaming packages.
package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns an attribute with key "error" carrying the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// ByteString returns a string attribute for a byte slice value, avoiding the
// base64 rendering slog applies to []byte by default.
func ByteString(key string, value []byte) slog.Attr {
	return slog.String(key, string(value))
}

// Stringer returns a string attribute from a fmt.Stringer value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}
