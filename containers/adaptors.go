package containers

import "iter"

// Container is the operation set shared by Deque and CircularDeque, over
// which the adaptors are defined.
type Container[T any] interface {
	Len() int
	Cap() int
	Empty() bool
	Full() bool
	Front() T
	Back() T
	At(i int) T
	Set(i int, v T)
	PushBack(v T)
	PushFront(v T)
	PopBack() T
	PopFront() T
	TryPushBack(v T) bool
	TryPushFront(v T) bool
	TryPopBack() (T, bool)
	TryPopFront() (T, bool)
	TryFront() (T, bool)
	TryBack() (T, bool)
	EraseAt(i int)
	Clear()
	Values() iter.Seq[T]
}

var (
	_ Container[int] = (*Deque[int])(nil)
	_ Container[int] = (*CircularDeque[int])(nil)
)

// Stack is a LIFO over the back of a container.
type Stack[T any] struct {
	c Container[T]
}

// NewStack returns a stack over a linear deque of the given capacity.
func NewStack[T any](capacity int) Stack[T] {
	return Stack[T]{c: NewDeque[T](capacity)}
}

// NewStackOf wraps an existing container.
func NewStackOf[T any](c Container[T]) Stack[T] { return Stack[T]{c: c} }

func (s Stack[T]) Push(v T) { s.c.PushBack(v) }

// Pop removes and returns the top. The stack must not be empty.
func (s Stack[T]) Pop() T { return s.c.PopBack() }

func (s Stack[T]) Top() T { return s.c.Back() }

func (s Stack[T]) TryPush(v T) bool { return s.c.TryPushBack(v) }

func (s Stack[T]) TryPop() (T, bool) { return s.c.TryPopBack() }

func (s Stack[T]) TryTop() (T, bool) { return s.c.TryBack() }

func (s Stack[T]) Len() int    { return s.c.Len() }
func (s Stack[T]) Cap() int    { return s.c.Cap() }
func (s Stack[T]) Empty() bool { return s.c.Empty() }
func (s Stack[T]) Full() bool  { return s.c.Full() }
func (s Stack[T]) Clear()      { s.c.Clear() }

// Queue is a FIFO: push at the back, pop at the front.
type Queue[T any] struct {
	c Container[T]
}

// NewQueue returns a queue over a linear deque; Pop is O(n).
func NewQueue[T any](capacity int) Queue[T] {
	return Queue[T]{c: NewDeque[T](capacity)}
}

// NewFastQueue returns a queue over a circular deque; Pop is O(1).
func NewFastQueue[T any](capacity int) Queue[T] {
	return Queue[T]{c: NewCircularDeque[T](capacity)}
}

func NewQueueOf[T any](c Container[T]) Queue[T] { return Queue[T]{c: c} }

func (q Queue[T]) Push(v T) { q.c.PushBack(v) }

// Pop removes and returns the oldest element. The queue must not be empty.
func (q Queue[T]) Pop() T { return q.c.PopFront() }

func (q Queue[T]) Front() T { return q.c.Front() }

func (q Queue[T]) Back() T { return q.c.Back() }

func (q Queue[T]) TryPush(v T) bool { return q.c.TryPushBack(v) }

func (q Queue[T]) TryPop() (T, bool) { return q.c.TryPopFront() }

func (q Queue[T]) Len() int    { return q.c.Len() }
func (q Queue[T]) Cap() int    { return q.c.Cap() }
func (q Queue[T]) Empty() bool { return q.c.Empty() }
func (q Queue[T]) Full() bool  { return q.c.Full() }
func (q Queue[T]) Clear()      { q.c.Clear() }

func (q Queue[T]) Values() iter.Seq[T] { return q.c.Values() }

// List exposes the full random-access surface of a container.
type List[T any] struct {
	c Container[T]
}

func NewList[T any](capacity int) List[T] {
	return List[T]{c: NewDeque[T](capacity)}
}

func NewListOf[T any](c Container[T]) List[T] { return List[T]{c: c} }

func (l List[T]) Len() int    { return l.c.Len() }
func (l List[T]) Cap() int    { return l.c.Cap() }
func (l List[T]) Empty() bool { return l.c.Empty() }
func (l List[T]) Full() bool  { return l.c.Full() }

func (l List[T]) Front() T       { return l.c.Front() }
func (l List[T]) Back() T        { return l.c.Back() }
func (l List[T]) At(i int) T     { return l.c.At(i) }
func (l List[T]) Set(i int, v T) { l.c.Set(i, v) }

func (l List[T]) PushBack(v T)  { l.c.PushBack(v) }
func (l List[T]) PushFront(v T) { l.c.PushFront(v) }
func (l List[T]) PopBack() T    { return l.c.PopBack() }
func (l List[T]) PopFront() T   { return l.c.PopFront() }

func (l List[T]) TryPushBack(v T) bool   { return l.c.TryPushBack(v) }
func (l List[T]) TryPushFront(v T) bool  { return l.c.TryPushFront(v) }
func (l List[T]) TryPopBack() (T, bool)  { return l.c.TryPopBack() }
func (l List[T]) TryPopFront() (T, bool) { return l.c.TryPopFront() }
func (l List[T]) Remove(i int)           { l.c.EraseAt(i) }
func (l List[T]) Clear()                 { l.c.Clear() }
func (l List[T]) Values() iter.Seq[T]    { return l.c.Values() }
