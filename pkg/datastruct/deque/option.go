package deque

type options[T any] struct {
	values Iterable[T]
	maxLen *int
	alloc  Allocator[T]
}

// Option New 的可选参数
type Option[T any] func(o *options[T])

// WithValues 用 values 初始化队列, 等价于创建后调用 Extend
func WithValues[T any](values Iterable[T]) Option[T] {
	return func(o *options[T]) {
		o.values = values
	}
}

// WithMaxLen 有界队列还没有实现, New 会返回 ErrorUnsupported
func WithMaxLen[T any](n int) Option[T] {
	return func(o *options[T]) {
		o.maxLen = &n
	}
}

// WithAllocator 替换默认的堆分配器
func WithAllocator[T any](alloc Allocator[T]) Option[T] {
	return func(o *options[T]) {
		if alloc != nil {
			o.alloc = alloc
		}
	}
}
