package multiregion

import (
	"fmt"
	"sync"
)

// Apply runs fn once per region, all regions concurrently, and returns
// after every one has finished and its device queue has drained. fn
// must touch only its own region's fields; cross-region data moves
// through halo exchange, never through direct reads inside fn.
//
// The first error encountered (lowest region ID) is returned; the
// remaining regions still run to completion so no device is left with
// queued work.
func (c *RegionContainer) Apply(fn func(r *Region) error) error {
	var (
		wg   sync.WaitGroup
		errs = make([]error, len(c.Regions))
	)
	for n, reg := range c.Regions {
		wg.Add(1)
		go func(n int, reg *Region) {
			defer wg.Done()
			errs[n] = fn(reg)
			if reg.Device != nil {
				reg.Device.Finish()
			}
		}(n, reg)
	}
	wg.Wait()

	for n, err := range errs {
		if err != nil {
			return fmt.Errorf("region %d: %w", n, err)
		}
	}
	return nil
}
