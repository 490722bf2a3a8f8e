package deque

import "github.com/pkg/errors"

var errNoMemory = errors.New("no memory")

// budgetAllocator 分配次数用完后返回 errNoMemory, 负数表示不限制
type budgetAllocator[T any] struct {
	blocks int
	slots  int
}

func (a *budgetAllocator[T]) NewBlock() (*Block[T], error) {
	if a.blocks == 0 {
		return nil, errNoMemory
	}
	if a.blocks > 0 {
		a.blocks--
	}
	return new(Block[T]), nil
}

func (a *budgetAllocator[T]) NewSlots(n int) ([]*Block[T], error) {
	if a.slots == 0 {
		return nil, errNoMemory
	}
	if a.slots > 0 {
		a.slots--
	}
	return make([]*Block[T], n), nil
}
