package actions

import (
	"math/rand/v2"
	"sync"

	"github.com/couchcryptid/flood-aid-actions/internal/domain"
)

// DefaultRand returns a goroutine-safe source backed by the runtime's
// randomly seeded generator.
func DefaultRand() domain.Rand {
	return globalRand{}
}

// NewSeededRand returns a goroutine-safe source with reproducible output.
func NewSeededRand(seed uint64) domain.Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed))}
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
