package rand_test

import (
	"sync"
	"testing"

	"github.com/plgd-dev/go-libcoap/pkg/rand"
	"github.com/stretchr/testify/require"
)

func TestRandIsDeterministicForSeed(t *testing.T) {
	a := rand.NewRand(42)
	b := rand.NewRand(42)
	for i := 0; i < 8; i++ {
		require.Equal(t, a.Uint32(), b.Uint32())
	}
}

func TestMultiThreadedRand(*testing.T) {
	r := rand.NewRand(0)
	var done sync.WaitGroup
	for i := 0; i < 100; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			_ = r.Uint32()
		}()
	}
	done.Wait()
}
