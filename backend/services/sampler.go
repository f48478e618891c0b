package services

import (
	"math/rand"
	"time"

	"nclexprep/backend/models"
)

// Sampler selects a randomized subset of questions without replacement.
type Sampler struct {
	rand *rand.Rand
}

func NewSampler() *Sampler {
	return &Sampler{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newSeededSampler is used by tests that need reproducible draws.
func newSeededSampler(seed int64) *Sampler {
	return &Sampler{rand: rand.New(rand.NewSource(seed))}
}

// Sample returns min(count, len(candidates)) questions in randomized order.
// Inputs of length 0 or 1 are returned unchanged. A shuffle that lands back
// on the input order gets two elements swapped, so small pools still come
// out visibly reordered.
func (s *Sampler) Sample(candidates []models.Question, count int) []models.Question {
	if len(candidates) <= 1 {
		return candidates
	}

	pool := make([]models.Question, len(candidates))
	copy(pool, candidates)

	// Fisher-Yates
	for i := len(pool) - 1; i > 0; i-- {
		j := s.rand.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	if sameOrder(pool, candidates) {
		pool[0], pool[1] = pool[1], pool[0]
	}

	if count < len(pool) {
		if count < 0 {
			count = 0
		}
		pool = pool[:count]
	}
	return pool
}

func sameOrder(a, b []models.Question) bool {
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
