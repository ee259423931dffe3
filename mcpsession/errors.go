package mcpsession

import "errors"

// Sentinel errors for the session lifecycle. Each failure from this package
// wraps exactly one of these plus the underlying cause, so callers can
// classify with errors.Is while the message keeps the full chain.
var (
	// ErrLaunch indicates the server process could not be started.
	ErrLaunch = errors.New("server launch failed")

	// ErrHandshake indicates the initialize exchange did not complete.
	ErrHandshake = errors.New("initialize handshake failed")

	// ErrInvocation indicates the tool call failed at the transport or
	// protocol level.
	ErrInvocation = errors.New("tool call failed")
)
