package connect

import "errors"

// ErrConnectivity marks an asymmetric or incomplete connectivity graph.
// This is always a construction-time bug and never recoverable at
// runtime: a misaligned graph silently corrupts every stencil.
var ErrConnectivity = errors.New("connect: invalid connectivity graph")
