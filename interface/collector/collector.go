package collector

// Visitor 返回非 nil 的 error 时终止遍历
type Visitor[T any] func(value T) error

// Traversable 容器向外部回收器暴露自己持有的所有值
type Traversable[T any] interface {
	Traverse(visit Visitor[T]) error
}

// Finalizer 容器销毁时由外部回收器调用一次
type Finalizer interface {
	Teardown()
}
