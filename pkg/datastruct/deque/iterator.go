package deque

import "iter"

// Iterator 前向迭代器. Next 返回 false 之后通过 Err 区分正常结束和迭代出错
type Iterator[T any] interface {
	Next() (T, bool)
	Err() error
}

// Iterable Extend 的输入
type Iterable[T any] interface {
	Iterator() Iterator[T]
}

type stopper interface {
	Stop()
}

// Slice 把切片包装成 Iterable
type Slice[T any] []T

func (s Slice[T]) Iterator() Iterator[T] {
	return &sliceIterator[T]{s: s}
}

type sliceIterator[T any] struct {
	s []T
	i int
}

func (it *sliceIterator[T]) Next() (v T, ok bool) {
	if it.i >= len(it.s) {
		return
	}
	v = it.s[it.i]
	it.i++
	return v, true
}

func (it *sliceIterator[T]) Err() error {
	return nil
}

// Seq2 把可能出错的 iter.Seq2 包装成 Iterable, 第一个非 nil 的 error 会终止迭代
type Seq2[T any] iter.Seq2[T, error]

func (s Seq2[T]) Iterator() Iterator[T] {
	next, stop := iter.Pull2(iter.Seq2[T, error](s))
	return &pullIterator[T]{next: next, stop: stop}
}

type pullIterator[T any] struct {
	next func() (T, error, bool)
	stop func()
	err  error
	done bool
}

func (it *pullIterator[T]) Next() (v T, ok bool) {
	if it.done {
		return
	}
	val, err, ok := it.next()
	if !ok || err != nil {
		it.err = err
		it.Stop()
		return
	}
	return val, true
}

func (it *pullIterator[T]) Err() error {
	return it.err
}

func (it *pullIterator[T]) Stop() {
	if !it.done {
		it.done = true
		it.stop()
	}
}

type dequeIterator[T any] struct {
	d *Deque[T]
	i int
}

func (it *dequeIterator[T]) Next() (v T, ok bool) {
	if it.i >= it.d.size {
		return
	}
	v = it.d.at(it.i)
	it.i++
	return v, true
}

func (it *dequeIterator[T]) Err() error {
	return nil
}
