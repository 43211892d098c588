package optimize_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/mixpath/harmonic"
	"github.com/katalvlaran/mixpath/optimize"
	"github.com/katalvlaran/mixpath/track"
)

// crate returns n pseudo-random tracks around 124–132 BPM; the fixed seed
// keeps runs comparable.
func crate(n int) []track.Track {
	rng := rand.New(rand.NewPCG(42, uint64(n)))
	keys := harmonic.AllKeys()
	out := make([]track.Track, n)
	for i := range out {
		out[i] = track.MustNew(
			fmt.Sprintf("trk-%03d", i),
			keys[rng.IntN(6)].String(),
			124+rng.Float64()*8,
			track.WithEnergy(1+rng.IntN(track.MaxEnergy)),
			track.WithDuration(240+rng.Float64()*180),
		)
	}

	return out
}

func BenchmarkOptimize(b *testing.B) {
	for _, n := range []int{8, 16, 24} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			tracks := crate(n)
			opts := optimize.DefaultOptions()
			opts.MaxDuration = 3600
			o, err := optimize.New(opts)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = o.Optimize(context.Background(), tracks, optimize.Request{})
			}
		})
	}
}
