package registry

import (
	"math/rand"

	"scrabblesrv/internal/model"
)

// RandomCodeGenerator returns a code-generating closure over rng suitable
// for New. Separated from Registry so tests can inject a seeded *rand.Rand
// and get fully reproducible room codes.
func RandomCodeGenerator(rng *rand.Rand) func(n int) string {
	alphabet := model.RoomCodeAlphabet
	return func(n int) string {
		out := make([]byte, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(out)
	}
}
