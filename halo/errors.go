package halo

import "errors"

// ErrExchange marks a failed halo update. After it, halo contents are
// undefined and the step must not proceed.
var ErrExchange = errors.New("halo: exchange failed")
