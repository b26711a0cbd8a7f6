// Package aio implements the async block I/O layer: page-aligned
// submit/poll reads and writes against direct-I/O files, with per-request
// handles carrying the (start_page, num_pages, buffer) tuple for
// completion matching. No corpus repo binds io_uring or a real kernel AIO
// ring, so this emulates the submit/poll contract with a worker-goroutine
// pool draining a task channel, modeled directly on kcp-go's
// timedsched.go (TimedSched's chTask + worker goroutines) and
// bufferpool.go's pooled-buffer discipline.
package aio

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

type opKind int

const (
	opRead opKind = iota
	opWrite
)

// Handle carries the state of one in-flight or completed request: the
// target file, its page range, its buffer, and (once complete) any
// error. Poll hands completed handles back to the caller.
type Handle struct {
	File      *File
	StartPage int64
	NumPages  int
	Buffer    []byte
	Err       error

	op opKind
}

// Context schedules async requests across a fixed worker pool and
// bounds in-flight submissions. It is not safe for concurrent Submit*/
// Poll calls from multiple goroutines sharing the same logical request
// stream; like kcp-go's UDPSession, ownership of a Context is meant to
// sit with a single caller loop.
type Context struct {
	chTask  chan *Handle
	chDone  chan *Handle
	die     chan struct{}
	dieOnce sync.Once
	sem     *semaphore.Weighted
	bufs    *bufferPool
}

// NewContext starts workers goroutines and bounds in-flight submissions
// (submitted but not yet drained by Poll) at maxInFlight.
func NewContext(workers, maxInFlight int) *Context {
	ctx := &Context{
		chTask: make(chan *Handle),
		chDone: make(chan *Handle, maxInFlight),
		die:    make(chan struct{}),
		sem:    semaphore.NewWeighted(int64(maxInFlight)),
		bufs:   newBufferPool(),
	}
	for i := 0; i < workers; i++ {
		go ctx.worker()
	}
	return ctx
}

func (c *Context) worker() {
	for {
		select {
		case h := <-c.chTask:
			offset := h.StartPage * PageSize
			switch h.op {
			case opRead:
				h.Err = h.File.readAt(h.Buffer, offset)
			case opWrite:
				h.Err = h.File.writeAt(h.Buffer, offset)
			}
			if h.Err != nil {
				h.Err = fmt.Errorf("%w: %w", ErrIOComplete, h.Err)
			}
			c.chDone <- h
		case <-c.die:
			return
		}
	}
}

// SubmitRead queues a page-aligned read of numPages*4096 bytes at file
// offset startPage*4096 into a freshly allocated page-aligned buffer. It
// may block briefly acquiring an in-flight slot, matching spec's
// "submit_* may block briefly inside the kernel queue."
func (c *Context) SubmitRead(f *File, startPage int64, numPages int) (*Handle, error) {
	if numPages <= 0 {
		return nil, ErrIOSubmit
	}
	if err := c.sem.Acquire(context.Background(), 1); err != nil {
		return nil, ErrIOSubmit
	}
	h := &Handle{
		File:      f,
		StartPage: startPage,
		NumPages:  numPages,
		Buffer:    c.bufs.get(numPages),
		op:        opRead,
	}
	return c.submit(h)
}

// SubmitWrite queues a page-aligned write of buf (length must be a
// multiple of 4096) to file offset startPage*4096. buf is caller-owned
// and is not recycled into the internal pool on completion.
func (c *Context) SubmitWrite(f *File, startPage int64, buf []byte) (*Handle, error) {
	if len(buf) == 0 || len(buf)%PageSize != 0 {
		return nil, ErrIOSubmit
	}
	if err := c.sem.Acquire(context.Background(), 1); err != nil {
		return nil, ErrIOSubmit
	}
	h := &Handle{
		File:      f,
		StartPage: startPage,
		NumPages:  len(buf) / PageSize,
		Buffer:    buf,
		op:        opWrite,
	}
	return c.submit(h)
}

func (c *Context) submit(h *Handle) (*Handle, error) {
	select {
	case c.chTask <- h:
		return h, nil
	case <-c.die:
		c.sem.Release(1)
		return nil, errClosed
	}
}

// AllocAligned returns a page-aligned buffer of the given page count for
// use with SubmitWrite, drawn from the same pool SubmitRead uses.
func (c *Context) AllocAligned(pages int) []byte {
	return c.bufs.get(pages)
}

// Poll drains any completions currently available without blocking and
// releases the in-flight slots they held. The returned handles' Err
// fields report per-request success or ErrIOComplete-class failures.
func (c *Context) Poll() (completed []*Handle, pagesCompleted int) {
	for {
		select {
		case h := <-c.chDone:
			completed = append(completed, h)
			pagesCompleted += h.NumPages
			c.sem.Release(1)
		default:
			return completed, pagesCompleted
		}
	}
}

// Release returns a read buffer to the internal pool once the caller is
// done with its contents. Write buffers are caller-owned and are not
// pooled; calling Release on one is a silent no-op.
func (c *Context) Release(h *Handle) {
	if h.op == opRead {
		c.bufs.put(h.Buffer)
	}
}

// Close stops the worker pool. In-flight requests are not canceled; they
// complete and their handles are simply never retrieved.
func (c *Context) Close() { c.dieOnce.Do(func() { close(c.die) }) }
