package deque

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockPool_LIFO(t *testing.T) {
	p := &blockPool[int]{alloc: heapAllocator[int]{}}
	blocks := make([]*Block[int], 10)
	for i := range blocks {
		b, err := p.acquire()
		require.NoError(t, err)
		blocks[i] = b
	}
	assert.Equal(t, 0, p.len())

	for _, b := range blocks {
		p.release(b)
	}
	// 超过上限的 block 直接丢弃
	assert.Equal(t, maxFreeBlocks, p.len())

	for i := maxFreeBlocks - 1; i >= 0; i-- {
		b, err := p.acquire()
		require.NoError(t, err)
		assert.Same(t, blocks[i], b)
	}
	assert.Equal(t, 0, p.len())
}

func TestBlockPool_ReleaseAll(t *testing.T) {
	p := &blockPool[string]{alloc: heapAllocator[string]{}}
	for i := 0; i < 3; i++ {
		p.release(new(Block[string]))
	}
	assert.Equal(t, 3, p.len())
	p.releaseAll()
	assert.Equal(t, 0, p.len())
	for _, b := range p.free {
		assert.Nil(t, b)
	}
}

func TestBlockPool_AcquireFailed(t *testing.T) {
	alloc := &budgetAllocator[int]{blocks: 0, slots: -1}
	p := &blockPool[int]{alloc: alloc}

	_, err := p.acquire()
	assert.True(t, errors.Is(err, ErrorAllocation))

	// 缓存中有 block 时不走分配器
	cached := new(Block[int])
	p.release(cached)
	b, err := p.acquire()
	require.NoError(t, err)
	assert.Same(t, cached, b)
}
