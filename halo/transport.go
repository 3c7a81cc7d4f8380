package halo

import (
	"fmt"
	"log"

	"github.com/gridcore/halogrid/connect"
	"github.com/gridcore/halogrid/grid"
)

// SlabRequest names one donor slab: the H layers of the donor field
// adjacent to the given side. The slab is returned in donor
// coordinates, depth 0 nearest the shared edge, edge index running in
// the donor's natural axis order, level-major:
//
//	slab[(k*H + d)*n + m]
//
// where n is the donor-side span. Wide requests extend a south or
// north slab across the donor's padded width, east-west halos included.
type SlabRequest struct {
	Donor *grid.Field
	Side  connect.Side
	Halo  int
	Wide  bool
}

// Transport fetches donor slabs for the exchange engine. The in-memory
// transport reads the donor field directly; a message-passing transport
// would issue a receive here. Fetch may fail transiently; the engine
// retries a bounded number of times before giving up.
type Transport interface {
	Fetch(req SlabRequest) ([]float64, error)
}

// MemoryTransport serves slabs by direct copy out of the donor's
// backing storage. It never fails.
type MemoryTransport struct{}

func (MemoryTransport) Fetch(req SlabRequest) ([]float64, error) {
	return extractSlab(req.Donor, req.Side, req.Halo, req.Wide), nil
}

// fetchRetries bounds transient transport failures per slab.
const fetchRetries = 3

func fetchSlab(t Transport, req SlabRequest) ([]float64, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchRetries; attempt++ {
		slab, err := t.Fetch(req)
		if err == nil {
			return slab, nil
		}
		lastErr = err
		log.Printf("slab fetch attempt %d/%d failed: %v", attempt, fetchRetries, err)
	}
	return nil, fmt.Errorf("%w: fetch gave up after %d attempts: %v",
		ErrExchange, fetchRetries, lastErr)
}
