package deque_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuning888/blockdeque/interface/collector"
	"github.com/xuning888/blockdeque/interface/dequeue"
	"github.com/xuning888/blockdeque/pkg/datastruct/deque"
)

type node struct {
	name     string
	children *deque.Deque[*node]
}

// reachable 模拟宿主回收器: 从 root 出发通过 Traverse 找到所有可达节点
func reachable(root *node) map[*node]bool {
	seen := map[*node]bool{}
	var walk func(n *node) error
	walk = func(n *node) error {
		if seen[n] {
			return nil
		}
		seen[n] = true
		var c collector.Traversable[*node] = n.children
		return c.Traverse(walk)
	}
	_ = walk(root)
	return seen
}

func newNode(name string) *node {
	return &node{name: name, children: &deque.Deque[*node]{}}
}

func TestCollector_TraverseCycle(t *testing.T) {
	a, b, c := newNode("a"), newNode("b"), newNode("c")
	require.NoError(t, a.children.Append(b))
	require.NoError(t, b.children.Append(c))
	// c -> a 构成环
	require.NoError(t, c.children.Append(a))
	orphan := newNode("orphan")

	seen := reachable(a)
	assert.Len(t, seen, 3)
	assert.False(t, seen[orphan])

	var f collector.Finalizer = a.children
	f.Teardown()
	assert.Equal(t, 0, a.children.Len())
	assert.Len(t, reachable(a), 1)
}

func TestDequeue_Interface(t *testing.T) {
	var q dequeue.Dequeue[string] = deque.Of("b")
	require.NoError(t, q.AppendLeft("a"))
	require.NoError(t, q.Append("c"))
	require.NoError(t, q.Set(1, "B"))

	var got []string
	for v := range q.Values() {
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "B", "c"}, got)

	v, err := q.PopLeft()
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	require.NoError(t, q.Clear())
	assert.Equal(t, 0, q.Len())
}

func ExampleDeque() {
	d := deque.Of(1, 2)
	_ = d.AppendLeft(0)
	_ = d.Extend(d)
	last, _ := d.Pop()
	fmt.Println(d.Slice(), last, d.Len())
	// Output: [0 1 2 0 1] 2 5
}

func ExampleDeque_ExtendLeft() {
	d := &deque.Deque[string]{}
	_ = d.ExtendLeft(deque.Slice[string]{"x", "y", "z"})
	fmt.Println(d.Slice())
	// Output: [z y x]
}
