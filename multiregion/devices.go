package multiregion

import (
	"fmt"
	"log"

	metis "github.com/notargets/go-metis"
	"github.com/notargets/gocca"

	"github.com/gridcore/halogrid/connect"
)

// CreateHostDevice opens an OCCA device for region work, preferring
// parallel backends and falling back to Serial.
func CreateHostDevice() (*gocca.OCCADevice, error) {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}
	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			log.Printf("Created %s device", device.Mode())
			return device, nil
		}
	}
	return nil, fmt.Errorf("%w: no OCCA backend available", ErrDevice)
}

// assignRoundRobin deals regions onto devices in ID order; with no
// devices every region gets -1 (host).
func assignRoundRobin(numRegions, numDevices int) []int {
	of := make([]int, numRegions)
	for r := range of {
		if numDevices == 0 {
			of[r] = -1
		} else {
			of[r] = r % numDevices
		}
	}
	return of
}

// AssignDevicesBalanced replaces the round-robin assignment with a
// METIS k-way partition of the region adjacency graph, so regions that
// exchange halos tend to land on the same device. Vertex weights are
// interior cell counts, edge weights the shared edge lengths in cells.
// Must be called before fields are created; the assignment is never
// changed implicitly afterwards.
func (c *RegionContainer) AssignDevicesBalanced() error {
	nd := len(c.Devices)
	if nd == 0 {
		return fmt.Errorf("%w: no devices to assign", ErrDevice)
	}
	if len(c.Regions[0].Fields) > 0 {
		return fmt.Errorf("%w: fields already created", ErrDevice)
	}
	if nd == 1 || len(c.Regions) <= nd {
		// Nothing for METIS to trade off.
		return nil
	}

	xadj, adjncy, vwgt, adjwgt := c.buildRegionGraph()

	opts := make([]int32, metis.NoOptions)
	if err := metis.SetDefaultOptions(opts); err != nil {
		return fmt.Errorf("failed to set METIS options: %w", err)
	}
	opts[metis.OptionObjType] = metis.ObjTypeCut

	part, objval, err := metis.PartGraphKwayWeighted(
		xadj, adjncy, vwgt, adjwgt,
		int32(nd), nil, []float32{1.05}, opts,
	)
	if err != nil {
		return fmt.Errorf("METIS device assignment failed: %w", err)
	}

	for r := range c.Regions {
		c.DeviceOf[r] = int(part[r])
		c.Regions[r].Device = c.deviceFor(r)
	}
	log.Printf("Balanced %d regions onto %d devices, edge cut %d",
		len(c.Regions), nd, objval)
	return nil
}

// buildRegionGraph converts the connectivity graph to METIS CSR form.
// Two sides can point at the same neighbor (a two-region periodic
// ring); those merge into one edge with summed weight.
func (c *RegionContainer) buildRegionGraph() (xadj, adjncy, vwgt, adjwgt []int32) {
	n := len(c.Regions)
	vwgt = make([]int32, n)
	nbrs := make([]map[int]int32, n)

	for r, reg := range c.Regions {
		lg := reg.Grid
		vwgt[r] = int32(lg.Nx * lg.Ny * lg.Nz)
		nbrs[r] = make(map[int]int32)
		for _, s := range connect.HorizontalSides {
			e, ok := c.Graph.Neighbor(r, s)
			if !ok || e.Neighbor == r {
				continue
			}
			w := int32(lg.Ny * lg.Nz)
			if s == connect.South || s == connect.North {
				w = int32(lg.Nx * lg.Nz)
			}
			nbrs[r][e.Neighbor] += w
		}
	}

	xadj = make([]int32, n+1)
	for r := 0; r < n; r++ {
		xadj[r+1] = xadj[r] + int32(len(nbrs[r]))
		for nbr, w := range nbrs[r] {
			adjncy = append(adjncy, int32(nbr))
			adjwgt = append(adjwgt, w)
		}
	}
	return xadj, adjncy, vwgt, adjwgt
}
