package noise

import (
	"math/rand/v2"

	"github.com/stevenvo780/duo-eterno/internal/seed"
)

func newTestRNG(s uint64) *rand.Rand { return seed.NewRNG(s) }
