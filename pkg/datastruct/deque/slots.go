package deque

import (
	"github.com/pkg/errors"
	"github.com/xuning888/blockdeque/logger"
)

const (
	minSlots   = 16
	growthRate = 2.0
	shrinkRate = 1.0 / growthRate
)

// slotArray 按顺序保存 block 指针, [leftBlock, rightBlock] 是正在使用的区间
type slotArray[T any] struct {
	alloc      Allocator[T]
	blocks     []*Block[T]
	leftBlock  int
	rightBlock int
	numBlocks  int
}

func (s *slotArray[T]) numSlots() int {
	return len(s.blocks)
}

// init 分配最小的 slot 数组, 并把空区间放在中点
func (s *slotArray[T]) init() error {
	blocks, err := s.alloc.NewSlots(minSlots)
	if err != nil {
		return errors.Wrapf(ErrorAllocation, "alloc %d slots: %v", minSlots, err)
	}
	s.blocks = blocks
	s.numBlocks = 0
	s.center()
	return nil
}

func (s *slotArray[T]) center() {
	s.leftBlock = len(s.blocks) >> 1
	s.rightBlock = s.leftBlock
}

// physicalIndex 把逻辑下标 i 转成 (block 下标, block 内偏移)
func (s *slotArray[T]) physicalIndex(i, leftItem int) (int, int) {
	j := i + leftItem
	return (j >> blockLogSize) + s.leftBlock, j & (BlockSize - 1)
}

func (s *slotArray[T]) grow() error {
	return s.update(int(float64(len(s.blocks)) * growthRate))
}

// shrink 占用率低于 shrinkRate/2 时才缩容, 和 grow 之间留出滞回区间
func (s *slotArray[T]) shrink() error {
	if float64(s.numBlocks)/float64(len(s.blocks)) >= shrinkRate/2.0 {
		return nil
	}
	return s.update(int(float64(len(s.blocks)) * shrinkRate))
}

func (s *slotArray[T]) update(numSlots int) error {
	if numSlots < minSlots {
		return nil
	}
	blocks, err := s.alloc.NewSlots(numSlots)
	if err != nil {
		return errors.Wrapf(ErrorAllocation, "resize slots %d -> %d: %v", len(s.blocks), numSlots, err)
	}
	if logger.IsEnabledDebug() {
		logger.DebugF("deque resize slots %d -> %d, blocks: %d", len(s.blocks), numSlots, s.numBlocks)
	}
	leftBlock := (numSlots - s.numBlocks) / 2
	copy(blocks[leftBlock:], s.blocks[s.leftBlock:s.leftBlock+s.numBlocks])
	s.blocks = blocks
	s.leftBlock = leftBlock
	// 空队列时 leftBlock == rightBlock
	s.rightBlock = leftBlock + max(s.numBlocks, 1) - 1
	return nil
}

// drop 清空所有 block 指针, 不回收
func (s *slotArray[T]) drop() {
	s.blocks = nil
	s.leftBlock = 0
	s.rightBlock = 0
	s.numBlocks = 0
}
