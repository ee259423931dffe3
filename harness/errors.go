package harness

import "errors"

// Sentinel errors for run failures raised by the harness itself. Session
// failures keep their own sentinels (mcpsession.ErrLaunch, ErrHandshake,
// ErrInvocation) and pass through Run unchanged, so the full taxonomy is
// classifiable with errors.Is at the single top-level catch point.
var (
	// ErrArgument indicates bad input, such as invalid JSON in the raw
	// tool arguments. Raised before any server process is launched.
	ErrArgument = errors.New("invalid argument")

	// ErrTool indicates the server reported an application-level tool
	// failure and the run was configured to treat that as fatal.
	ErrTool = errors.New("tool reported an error")

	// ErrSerialize indicates the tool result could not be rendered as
	// canonical JSON.
	ErrSerialize = errors.New("result serialization failed")
)
