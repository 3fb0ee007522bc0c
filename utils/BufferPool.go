package utils

import (
	"math/bits"
	"sync"
)

// BufferSizeClass lists the scratch sizes handed out for block transfers.
// Domain objects are small, so the classes start at a single machine word.
var BufferSizeClass = [...]int{8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

const (
	minClassBits = 3 // log2(BufferSizeClass[0])
	maxClassSize = 4096
)

func SizeIndex(n int) int {
	if n <= 0 || n > maxClassSize {
		return -1
	}
	idx := bits.Len(uint(n - 1))
	if idx < minClassBits {
		return 0
	}
	return idx - minClassBits
}

type BufferPool struct {
	pools [len(BufferSizeClass)]sync.Pool
}

func NewBufferPool() *BufferPool {
	var bp BufferPool
	for i, sz := range BufferSizeClass {
		size := sz
		bp.pools[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return &bp
}

// Acquire returns a buffer of exactly n bytes with capacity of its class.
func (bp *BufferPool) Acquire(n int) []byte {
	idx := SizeIndex(n)
	if idx < 0 {
		return make([]byte, n)
	}
	bufPtr := bp.pools[idx].Get().(*[]byte)
	return (*bufPtr)[:n]
}

func (bp *BufferPool) AcquireZeroed(n int) []byte {
	buf := bp.Acquire(n)
	clear(buf)
	return buf
}

// Release returns the buffer to its pool if its capacity matches a class.
func (bp *BufferPool) Release(buf []byte) {
	c := cap(buf)
	if c&(c-1) != 0 || c < BufferSizeClass[0] || c > maxClassSize {
		return // not a valid class
	}
	idx := bits.Len(uint(c)) - minClassBits - 1
	if BufferSizeClass[idx] == c {
		buf = buf[:c]
		bp.pools[idx].Put(&buf)
	}
}
