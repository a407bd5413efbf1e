package element

import (
	"sync"

	"github.com/notargets/gotab/cell"
)

type cacheKey struct {
	family Family
	cell   cell.Type
	degree int
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[cacheKey]*FiniteElement)
)

// CreateCached returns a process-wide shared element, constructing it on
// first use. Elements are immutable, so sharing is safe; a failed
// construction leaves no cache entry.
func CreateCached(fam Family, ct cell.Type, degree int) (fe *FiniteElement, err error) {
	key := cacheKey{fam, ct, degree}
	cacheMu.RLock()
	fe, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		return
	}
	fe, err = Create(fam, ct, degree)
	if err != nil {
		return
	}
	cacheMu.Lock()
	// Another goroutine may have raced the construction; keep its element
	// so callers always see a single shared instance.
	if prior, ok := cache[key]; ok {
		fe = prior
	} else {
		cache[key] = fe
	}
	cacheMu.Unlock()
	return
}
