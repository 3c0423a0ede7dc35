package stats_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DaHogie/memcachedImplementation/internal/stats"
)

func TestCountersAccumulate(t *testing.T) {
	var c stats.Counters
	c.IncConnections()
	c.IncSet()
	c.IncSet()
	c.IncGet()
	c.IncDelete()

	snap := c.Snap()
	assert.EqualValues(t, 1, snap.Connections)
	assert.EqualValues(t, 2, snap.SetOps)
	assert.EqualValues(t, 1, snap.GetOps)
	assert.EqualValues(t, 1, snap.DeleteOps)
}

func TestCountersConcurrentIncrementsAreRaceFree(t *testing.T) {
	var c stats.Counters
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncGet()
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 100, c.Snap().GetOps)
}
