package deque

import "github.com/pkg/errors"

const (
	blockLogSize = 6
	// BlockSize 每个 block 能存放的元素个数
	BlockSize = 1 << blockLogSize
	// maxFreeBlocks 回收缓存的上限, 超过后直接丢弃交给 GC
	maxFreeBlocks = 8
)

// Block 固定容量的存储单元
type Block[T any] [BlockSize]T

// Allocator 负责 block 和 slot 数组的分配, 分配失败时返回 error 而不是 panic
type Allocator[T any] interface {
	NewBlock() (*Block[T], error)
	NewSlots(n int) ([]*Block[T], error)
}

type heapAllocator[T any] struct{}

func (heapAllocator[T]) NewBlock() (*Block[T], error) {
	return new(Block[T]), nil
}

func (heapAllocator[T]) NewSlots(n int) ([]*Block[T], error) {
	return make([]*Block[T], n), nil
}

// blockPool LIFO 的 block 缓存
type blockPool[T any] struct {
	alloc Allocator[T]
	free  [maxFreeBlocks]*Block[T]
	n     int
}

func (p *blockPool[T]) acquire() (*Block[T], error) {
	if p.n == 0 {
		b, err := p.alloc.NewBlock()
		if err != nil {
			return nil, errors.Wrapf(ErrorAllocation, "alloc block: %v", err)
		}
		return b, nil
	}
	p.n--
	b := p.free[p.n]
	p.free[p.n] = nil
	return b, nil
}

// release 调用方保证 b 中的元素已经清零
func (p *blockPool[T]) release(b *Block[T]) {
	if p.n >= maxFreeBlocks {
		return
	}
	p.free[p.n] = b
	p.n++
}

func (p *blockPool[T]) releaseAll() {
	for i := 0; i < p.n; i++ {
		p.free[i] = nil
	}
	p.n = 0
}

func (p *blockPool[T]) len() int {
	return p.n
}
