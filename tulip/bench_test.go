package tulip_test

import (
	"testing"

	"github.com/katalvlaran/depthlath/tulip"
)

// BenchmarkBins_PushPop measures a sweep-like pattern: every pop pushes three
// records at small random offsets.
func BenchmarkBins_PushPop(b *testing.B) {
	rnd := tulip.NewRand(7)
	bins, _ := tulip.New(tulip.FullResolution, rnd)
	costs := make([]float64, 1024)
	for i := range costs {
		costs[i] = rnd.Float64()
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bins.Reset()
		bins.Push(0, tulip.SegmentData{Ref: 0})
		for n := 0; n < 4096; n++ {
			rec, ok := bins.Pop()
			if !ok {
				break
			}
			for k := 0; k < 3 && n < 1024; k++ {
				c := costs[(n*3+k)%len(costs)]
				bins.Push(bins.Offset(c), tulip.SegmentData{Ref: rec.Ref + k + 1, Pred: rec.Ref, Depth: rec.Depth + c})
			}
		}
	}
}
