package dequeue

import "iter"

// Dequeue 双端队列的抽象
type Dequeue[T any] interface {
	// Append 添加到尾部
	Append(value T) error
	// AppendLeft 添加到头部
	AppendLeft(value T) error
	// Pop 移除并返回尾部元素
	Pop() (T, error)
	// PopLeft 移除并返回头部元素
	PopLeft() (T, error)
	// Get 获取index位置的数据
	Get(index int) (T, error)
	// Set 覆盖index位置的数据
	Set(index int, value T) error
	// Len 获取长度
	Len() int
	// Clear 清空队列
	Clear() error
	// Values 从头到尾遍历
	Values() iter.Seq[T]
}
