package multiregion

import "errors"

// ErrDevice marks an inconsistent device count or assignment. Like the
// other setup errors this is fatal: issuing region work on the wrong
// device corrupts state with no local symptom.
var ErrDevice = errors.New("multiregion: invalid device assignment")
