package aio

import (
	"sync"
	"unsafe"
)

// PageSize is the fixed block size the async I/O layer operates in.
const PageSize = 4096

// alignedAlloc returns a page-aligned slice of exactly size bytes by
// over-allocating and slicing to the next page boundary. Neither the
// stdlib nor golang.org/x/sys/unix exposes posix_memalign, so pointer
// arithmetic is the only way to get an aligned buffer; this is the one
// place in the layer that reaches for unsafe instead of a library.
func alignedAlloc(size int) []byte {
	raw := make([]byte, size+PageSize-1)
	offset := int(uintptr(unsafe.Pointer(&raw[0])) % PageSize)
	if offset == 0 {
		return raw[:size:size]
	}
	start := PageSize - offset
	return raw[start : start+size : start+size]
}

// bufferPool hands out page-aligned buffers of a fixed page count,
// generalizing kcp-go's bufferpool.go (a single fixed-size sync.Pool)
// to one pool per distinct request size, since requests here vary in
// num_pages rather than sharing one MTU-sized buffer.
type bufferPool struct {
	mu    sync.Mutex
	byLen map[int]*sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{byLen: make(map[int]*sync.Pool)}
}

func (p *bufferPool) get(pages int) []byte {
	size := pages * PageSize
	p.mu.Lock()
	pool, ok := p.byLen[size]
	if !ok {
		pool = &sync.Pool{New: func() any { return alignedAlloc(size) }}
		p.byLen[size] = pool
	}
	p.mu.Unlock()
	return pool.Get().([]byte)
}

func (p *bufferPool) put(buf []byte) {
	size := len(buf)
	p.mu.Lock()
	pool, ok := p.byLen[size]
	p.mu.Unlock()
	if !ok {
		return
	}
	pool.Put(buf) //nolint:staticcheck // size-keyed, safe to recycle
}
