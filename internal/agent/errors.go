package agent

import "errors"

// ErrUpstreamModel marks failures of the language-model client (network,
// auth, malformed output). The user turn stays persisted; no assistant turn
// is written.
var ErrUpstreamModel = errors.New("upstream model error")

// ErrStorage marks record-store failures that abort the request, i.e. the
// user-turn write in Respond.
var ErrStorage = errors.New("storage error")
