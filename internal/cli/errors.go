package cli

import "errors"

// ErrPromptCancelled indicates that the user aborted an interactive profile
// selection or confirmation.
var ErrPromptCancelled = errors.New("prompt cancelled")
