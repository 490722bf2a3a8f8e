package bench

import (
	"sort"

	"github.com/bytedance/gopkg/lang/fastrand"
	gammazero "github.com/gammazero/deque"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuning888/blockdeque/config"
	"github.com/xuning888/blockdeque/logger"
	"github.com/xuning888/blockdeque/pkg/datastruct/deque"
)

const extendChunk = 100

var ErrorUnknownCase = errors.New("unknown bench case")

type Params struct {
	Length int
	Number int
}

// Impl 某个实现在某个 case 下的 setup
type Impl struct {
	Name  string
	Setup func(p Params) func()
}

type Case struct {
	Name  string
	Impls []Impl
}

type Result struct {
	Case  string
	Impl  string
	Stats Stats
}

func fill(d *deque.Deque[int], n int) {
	for i := 0; i < n; i++ {
		_ = d.Append(0)
	}
}

func fillRef(d *gammazero.Deque[int], n int) {
	for i := 0; i < n; i++ {
		d.PushBack(0)
	}
}

var cases = []Case{
	{
		Name: "pop_append",
		Impls: []Impl{
			{Name: "blockdeque", Setup: func(p Params) func() {
				d := &deque.Deque[int]{}
				return func() {
					_ = d.Append(0)
					_ = d.AppendLeft(0)
					_, _ = d.PopLeft()
					_, _ = d.Pop()
				}
			}},
			{Name: "gammazero", Setup: func(p Params) func() {
				d := gammazero.New[int]()
				return func() {
					d.PushBack(0)
					d.PushFront(0)
					d.PopFront()
					d.PopBack()
				}
			}},
		},
	},
	{
		Name: "pop",
		Impls: []Impl{
			{Name: "blockdeque", Setup: func(p Params) func() {
				d := &deque.Deque[int]{}
				fill(d, max(p.Length, p.Number))
				return func() {
					_, _ = d.Pop()
				}
			}},
			{Name: "gammazero", Setup: func(p Params) func() {
				d := gammazero.New[int]()
				fillRef(d, max(p.Length, p.Number))
				return func() {
					d.PopBack()
				}
			}},
		},
	},
	{
		Name: "getitem",
		Impls: []Impl{
			{Name: "blockdeque", Setup: func(p Params) func() {
				d := &deque.Deque[int]{}
				fill(d, p.Length)
				return func() {
					_, _ = d.Get(fastrand.Intn(p.Length))
				}
			}},
			{Name: "gammazero", Setup: func(p Params) func() {
				d := gammazero.New[int]()
				fillRef(d, p.Length)
				return func() {
					_ = d.At(fastrand.Intn(p.Length))
				}
			}},
		},
	},
	{
		Name: "setitem",
		Impls: []Impl{
			{Name: "blockdeque", Setup: func(p Params) func() {
				d := &deque.Deque[int]{}
				fill(d, p.Length)
				return func() {
					_ = d.Set(fastrand.Intn(p.Length), 1)
				}
			}},
			{Name: "gammazero", Setup: func(p Params) func() {
				d := gammazero.New[int]()
				fillRef(d, p.Length)
				return func() {
					d.Set(fastrand.Intn(p.Length), 1)
				}
			}},
		},
	},
	{
		Name: "extend",
		Impls: []Impl{
			{Name: "blockdeque", Setup: func(p Params) func() {
				d := &deque.Deque[int]{}
				chunk := deque.Slice[int](make([]int, extendChunk))
				return func() {
					_ = d.Extend(chunk)
				}
			}},
			{Name: "gammazero", Setup: func(p Params) func() {
				d := gammazero.New[int]()
				chunk := make([]int, extendChunk)
				return func() {
					for _, v := range chunk {
						d.PushBack(v)
					}
				}
			}},
		},
	},
	{
		Name: "clear",
		Impls: []Impl{
			{Name: "blockdeque", Setup: func(p Params) func() {
				d := &deque.Deque[int]{}
				fill(d, p.Length)
				return func() {
					_ = d.Clear()
				}
			}},
			{Name: "gammazero", Setup: func(p Params) func() {
				d := gammazero.New[int]()
				fillRef(d, p.Length)
				return func() {
					d.Clear()
				}
			}},
		},
	},
	{
		Name: "init",
		Impls: []Impl{
			{Name: "blockdeque", Setup: func(p Params) func() {
				return func() {
					_, _ = deque.New[int]()
				}
			}},
			{Name: "gammazero", Setup: func(p Params) func() {
				return func() {
					_ = gammazero.New[int]()
				}
			}},
		},
	},
}

// Names 所有 case 的名字, 按字母序
func Names() []string {
	names := make([]string, 0, len(cases))
	for _, c := range cases {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (Case, bool) {
	for _, c := range cases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// Run 按配置执行 case, 没有指定 case 时执行全部
func Run(timer *Timer, props *config.BenchProperties) ([]Result, error) {
	names := props.Cases
	if len(names) == 0 {
		names = Names()
	}
	selected := make([]Case, 0, len(names))
	for _, name := range names {
		c, ok := lookup(name)
		if !ok {
			return nil, errors.Wrapf(ErrorUnknownCase, "case %q", name)
		}
		selected = append(selected, c)
	}

	params := Params{Length: props.Length, Number: props.Number}
	results := make([]Result, 0, len(selected)*2)
	for _, c := range selected {
		for _, impl := range c.Impls {
			impl := impl
			timings := timer.Exec(func() func() { return impl.Setup(params) }, props.Repeat, props.Number)
			r := Result{Case: c.Name, Impl: impl.Name, Stats: Summarize(timings)}
			logger.WithFields(logrus.Fields{
				"case":   r.Case,
				"impl":   r.Impl,
				"min":    r.Stats.Min,
				"max":    r.Stats.Max,
				"median": r.Stats.Median,
				"std":    r.Stats.Stdev,
			}).Info("bench done")
			results = append(results, r)
		}
	}
	return results, nil
}
