package agent

import "errors"

// errEmptyStream marks a streaming call that finished without producing
// any output fragments.
var errEmptyStream = errors.New("model produced no output")
