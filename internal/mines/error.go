package mines

import "errors"

// ErrInvalidParameters is returned by [GameParams.Validate] and everything
// that builds a field from parameters. The wrapped message names the rule
// that was broken.
var ErrInvalidParameters = errors.New("invalid game parameters")
