package partition

import "errors"

// Sentinel errors for decomposition setup. All are construction-time and
// fatal: an inconsistent decomposition corrupts every downstream stencil
// without a local symptom, so nothing here is recoverable.
var (
	// ErrConfig marks invalid partition parameters: non-positive counts,
	// explicit sizes that do not sum to the global size, bad fractions.
	ErrConfig = errors.New("partition: invalid configuration")

	// ErrTopology marks an ambiguous global topology inference, i.e. the
	// per-region local boundary kinds disagree about what the global
	// boundary must have been.
	ErrTopology = errors.New("partition: ambiguous global topology")
)
