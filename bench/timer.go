package bench

import (
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
)

// Stats 每次调用的耗时统计, 单位 ns
type Stats struct {
	Min    float64
	Max    float64
	Median float64
	Stdev  float64
}

// Timer 重复执行 stmt 并统计平均耗时
type Timer struct {
	clock clockwork.Clock
}

func NewTimer(clock clockwork.Clock) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{clock: clock}
}

// Exec 执行 repeat 轮, 每轮先调用 setup 得到 stmt, 再计时执行 number 次
func (t *Timer) Exec(setup func() func(), repeat, number int) []float64 {
	timings := make([]float64, 0, repeat)
	for r := 0; r < repeat; r++ {
		stmt := setup()
		start := t.clock.Now()
		for i := 0; i < number; i++ {
			stmt()
		}
		elapsed := t.clock.Since(start)
		timings = append(timings, float64(elapsed/time.Nanosecond)/float64(number))
	}
	return timings
}

func Summarize(timings []float64) Stats {
	if len(timings) == 0 {
		return Stats{}
	}
	sorted := append([]float64(nil), timings...)
	sort.Float64s(sorted)

	n := len(sorted)
	s := Stats{Min: sorted[0], Max: sorted[n-1]}
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	if n > 1 {
		var sum float64
		for _, v := range sorted {
			sum += v
		}
		mean := sum / float64(n)
		var sq float64
		for _, v := range sorted {
			sq += (v - mean) * (v - mean)
		}
		s.Stdev = math.Sqrt(sq / float64(n-1))
	}
	return s
}
