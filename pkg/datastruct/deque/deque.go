// Package deque 基于定长 block 的双端队列.
//
// 元素存放在容量为 BlockSize 的 block 中, block 指针保存在一个可伸缩的 slot 数组里,
// 两端的插入删除均摊 O(1), 下标访问 O(1). 空出来的 block 会被回收到一个容量为 8 的
// LIFO 缓存中复用. Deque 不是并发安全的, 并发访问需要调用方自己加锁.
package deque

import (
	"iter"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/xuning888/blockdeque/interface/collector"
	"github.com/xuning888/blockdeque/interface/dequeue"
	"github.com/xuning888/blockdeque/logger"
)

var (
	ErrorAllocation  = errors.New("deque allocation failed")
	ErrorEmpty       = errors.New("pop from an empty deque")
	ErrorOutIndex    = errors.New("deque index out of range")
	ErrorUnsupported = errors.New("maxlen argument is not yet supported")
)

var (
	_ dequeue.Dequeue[any]       = &Deque[any]{}
	_ collector.Traversable[any] = &Deque[any]{}
	_ collector.Finalizer        = &Deque[any]{}
	_ Iterable[any]              = &Deque[any]{}
)

// Deque 的零值可以直接使用, slot 数组在第一次写入时分配.
//
// leftItem 是最左侧 block 中第一个元素的偏移, rightItem 是最右侧 block 中最后一个元素的偏移.
// 空队列时 leftItem == rightItem == BlockSize/2, 并且 leftBlock == rightBlock 位于 slot 数组中点.
type Deque[T any] struct {
	size      int
	leftItem  int
	rightItem int
	slots     slotArray[T]
	pool      blockPool[T]
}

// New 创建一个空队列, 如果指定了 WithValues 则依次 Append
func New[T any](opts ...Option[T]) (*Deque[T], error) {
	o := &options[T]{alloc: heapAllocator[T]{}}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxLen != nil {
		return nil, errors.Wrapf(ErrorUnsupported, "maxlen=%d", *o.maxLen)
	}
	d := &Deque[T]{}
	d.slots.alloc = o.alloc
	d.pool.alloc = o.alloc
	if err := d.init(); err != nil {
		return nil, err
	}
	if o.values != nil {
		if err := d.Extend(o.values); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Of 使用默认分配器创建包含 values 的队列
func Of[T any](values ...T) *Deque[T] {
	d := &Deque[T]{}
	for _, v := range values {
		// 默认分配器不会失败
		_ = d.Append(v)
	}
	return d
}

func (d *Deque[T]) init() error {
	if d.slots.alloc == nil {
		d.slots.alloc = heapAllocator[T]{}
		d.pool.alloc = d.slots.alloc
	}
	if err := d.slots.init(); err != nil {
		return err
	}
	d.resetItems()
	return nil
}

func (d *Deque[T]) resetItems() {
	d.leftItem = BlockSize >> 1
	d.rightItem = d.leftItem
}

// Len 返回元素个数
func (d *Deque[T]) Len() int {
	return d.size
}

// MaxLen 队列总是无界的
func (d *Deque[T]) MaxLen() (int, bool) {
	return 0, false
}

func (d *Deque[T]) NumSlots() int {
	return d.slots.numSlots()
}

func (d *Deque[T]) NumBlocks() int {
	return d.slots.numBlocks
}

func (d *Deque[T]) FreeBlocks() int {
	return d.pool.len()
}

// Append 添加到尾部. 分配失败时返回 ErrorAllocation, 队列保持不变
func (d *Deque[T]) Append(value T) error {
	if d.size == 0 {
		if d.slots.blocks == nil {
			if err := d.init(); err != nil {
				return err
			}
		}
		block, err := d.pool.acquire()
		if err != nil {
			return err
		}
		d.slots.blocks[d.slots.rightBlock] = block
		d.slots.numBlocks++
		d.rightItem--
	} else if d.rightItem == BlockSize-1 {
		block, err := d.pool.acquire()
		if err != nil {
			return err
		}
		if d.slots.rightBlock == d.slots.numSlots()-1 {
			if err := d.slots.grow(); err != nil {
				d.pool.release(block)
				return err
			}
		}
		d.slots.rightBlock++
		d.slots.blocks[d.slots.rightBlock] = block
		d.slots.numBlocks++
		d.rightItem = -1
	}
	d.rightItem++
	d.slots.blocks[d.slots.rightBlock][d.rightItem] = value
	d.size++
	return nil
}

// AppendLeft 添加到头部. 分配失败时返回 ErrorAllocation, 队列保持不变
func (d *Deque[T]) AppendLeft(value T) error {
	if d.size == 0 {
		if d.slots.blocks == nil {
			if err := d.init(); err != nil {
				return err
			}
		}
		block, err := d.pool.acquire()
		if err != nil {
			return err
		}
		d.slots.blocks[d.slots.leftBlock] = block
		d.slots.numBlocks++
		d.leftItem++
	} else if d.leftItem == 0 {
		block, err := d.pool.acquire()
		if err != nil {
			return err
		}
		if d.slots.leftBlock == 0 {
			if err := d.slots.grow(); err != nil {
				d.pool.release(block)
				return err
			}
		}
		d.slots.leftBlock--
		d.slots.blocks[d.slots.leftBlock] = block
		d.slots.numBlocks++
		d.leftItem = BlockSize
	}
	d.leftItem--
	d.slots.blocks[d.slots.leftBlock][d.leftItem] = value
	d.size++
	return nil
}

// Pop 移除并返回尾部元素, 空队列返回 ErrorEmpty
func (d *Deque[T]) Pop() (value T, err error) {
	if d.size == 0 {
		return value, ErrorEmpty
	}
	var zero T
	block := d.slots.blocks[d.slots.rightBlock]
	value = block[d.rightItem]
	block[d.rightItem] = zero
	d.size--

	if d.size == 0 {
		d.releaseBlock(d.slots.rightBlock)
		d.slots.numBlocks = 0
		d.slots.center()
		d.resetItems()
	} else if d.rightItem == 0 {
		d.releaseBlock(d.slots.rightBlock)
		d.slots.numBlocks--
		d.slots.rightBlock--
		d.rightItem = BlockSize - 1
	} else {
		d.rightItem--
	}
	d.shrink()
	return value, nil
}

// PopLeft 移除并返回头部元素, 空队列返回 ErrorEmpty
func (d *Deque[T]) PopLeft() (value T, err error) {
	if d.size == 0 {
		return value, ErrorEmpty
	}
	var zero T
	block := d.slots.blocks[d.slots.leftBlock]
	value = block[d.leftItem]
	block[d.leftItem] = zero
	d.size--

	if d.size == 0 {
		d.releaseBlock(d.slots.leftBlock)
		d.slots.numBlocks = 0
		d.slots.center()
		d.resetItems()
	} else if d.leftItem == BlockSize-1 {
		d.releaseBlock(d.slots.leftBlock)
		d.slots.numBlocks--
		d.slots.leftBlock++
		d.leftItem = 0
	} else {
		d.leftItem++
	}
	d.shrink()
	return value, nil
}

func (d *Deque[T]) releaseBlock(i int) {
	d.pool.release(d.slots.blocks[i])
	d.slots.blocks[i] = nil
}

// shrink 失败不影响已经完成的 pop, slot 数组保持原样, 下一次 pop 时重试
func (d *Deque[T]) shrink() {
	if err := d.slots.shrink(); err != nil {
		logger.WarnF("deque shrink slots failed: %v", err)
	}
}

// Get 获取index位置的数据, 越界返回 ErrorOutIndex
func (d *Deque[T]) Get(index int) (value T, err error) {
	if uint(index) >= uint(d.size) {
		return value, ErrorOutIndex
	}
	if index == 0 {
		return d.slots.blocks[d.slots.leftBlock][d.leftItem], nil
	}
	if index == d.size-1 {
		return d.slots.blocks[d.slots.rightBlock][d.rightItem], nil
	}
	return d.at(index), nil
}

// Set 覆盖index位置的数据, 越界返回 ErrorOutIndex
func (d *Deque[T]) Set(index int, value T) error {
	if uint(index) >= uint(d.size) {
		return ErrorOutIndex
	}
	b, o := d.slots.physicalIndex(index, d.leftItem)
	d.slots.blocks[b][o] = value
	return nil
}

func (d *Deque[T]) at(i int) T {
	b, o := d.slots.physicalIndex(i, d.leftItem)
	return d.slots.blocks[b][o]
}

// Extend 依次 Append src 中的元素. src 是 d 本身时先拷贝一份再迭代.
// 迭代器出错时返回该错误, 已经添加的元素保留.
func (d *Deque[T]) Extend(src Iterable[T]) error {
	return d.extend(src, d.Append)
}

// ExtendLeft 依次 AppendLeft src 中的元素, 结果中这些元素的顺序与 src 相反
func (d *Deque[T]) ExtendLeft(src Iterable[T]) error {
	return d.extend(src, d.AppendLeft)
}

func (d *Deque[T]) extend(src Iterable[T], push func(T) error) error {
	if other, ok := src.(*Deque[T]); ok && other == d {
		src = Slice[T](d.Slice())
	}
	it := src.Iterator()
	if s, ok := it.(stopper); ok {
		defer s.Stop()
	}
	for {
		value, ok := it.Next()
		if !ok {
			break
		}
		if err := push(value); err != nil {
			return err
		}
	}
	return it.Err()
}

// Clear 清空队列, 释放所有元素, block 归还缓存, slot 数组恢复到最小容量.
// 新 slot 数组分配失败时返回 ErrorAllocation, 队列保持不变.
func (d *Deque[T]) Clear() error {
	if d.size == 0 {
		return nil
	}
	blocks, err := d.slots.alloc.NewSlots(minSlots)
	if err != nil {
		return errors.Wrapf(ErrorAllocation, "alloc %d slots: %v", minSlots, err)
	}
	for i := d.slots.leftBlock; i <= d.slots.rightBlock; i++ {
		clear(d.slots.blocks[i][:])
		d.releaseBlock(i)
	}
	d.slots.blocks = blocks
	d.slots.numBlocks = 0
	d.slots.center()
	d.resetItems()
	d.size = 0
	return nil
}

// Teardown 释放所有元素, slot 数组和缓存的 block. 之后 d 回到零值状态, 仍可以继续使用
func (d *Deque[T]) Teardown() {
	if d.size > 0 {
		for i := d.slots.leftBlock; i <= d.slots.rightBlock; i++ {
			clear(d.slots.blocks[i][:])
			d.slots.blocks[i] = nil
		}
	}
	d.slots.drop()
	d.pool.releaseAll()
	d.size = 0
	d.resetItems()
}

// Traverse 按逻辑顺序访问每一个元素, visit 返回 error 时终止并返回该 error
func (d *Deque[T]) Traverse(visit collector.Visitor[T]) error {
	for i := 0; i < d.size; i++ {
		if err := visit(d.at(i)); err != nil {
			return err
		}
	}
	return nil
}

// MemoryFootprint 估算占用的字节数: 头部 + slot 数组 + (使用中和缓存的 block)
func (d *Deque[T]) MemoryFootprint() int {
	var zero T
	var handle *Block[T]
	res := int(unsafe.Sizeof(*d))
	res += d.slots.numSlots() * int(unsafe.Sizeof(handle))
	res += (d.slots.numBlocks + d.pool.len()) * BlockSize * int(unsafe.Sizeof(zero))
	return res
}

// Slice 按顺序拷贝出所有元素, 不与队列共享内存
func (d *Deque[T]) Slice() []T {
	res := make([]T, 0, d.size)
	for i := 0; i < d.size; i++ {
		res = append(res, d.at(i))
	}
	return res
}

// Iterator 前向迭代器, 迭代期间修改队列的结果未定义
func (d *Deque[T]) Iterator() Iterator[T] {
	return &dequeIterator[T]{d: d}
}

// All 按顺序返回 (下标, 元素)
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.size; i++ {
			if !yield(i, d.at(i)) {
				return
			}
		}
	}
}

// Values 按顺序返回元素
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < d.size; i++ {
			if !yield(d.at(i)) {
				return
			}
		}
	}
}
