package dialogue

import (
	"math/rand"
	"sync"
	"time"
)

// Random is the only source of randomness of the engine. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Float64() float64
}

type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a goroutine-safe source. A zero seed uses the current time.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRandom{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

func choice(rng Random, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rng.Intn(len(items))]
}

// sample picks up to k distinct items in random order.
func sample(rng Random, items []string, k int) []string {
	pool := append([]string(nil), items...)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
