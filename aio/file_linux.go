//go:build linux

package aio

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Open opens path for direct I/O, attaching O_DIRECT so reads and writes
// bypass the page cache, matching the "asynchronous direct I/O" contract
// the block I/O layer promises callers. Mirrors the _linux.go / generic
// split kcp-go uses for its recvmmsg fast path (readloop_linux.go vs. the
// portable default loop).
func Open(path string, writable bool) (*File, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag|unix.O_DIRECT, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "aio: open %s", path)
	}
	return &File{f: f}, nil
}

func (f *File) readAt(buf []byte, offset int64) error {
	_, err := unix.Pread(int(f.f.Fd()), buf, offset)
	if err != nil {
		return errors.Wrap(err, "aio: pread")
	}
	return nil
}

func (f *File) writeAt(buf []byte, offset int64) error {
	_, err := unix.Pwrite(int(f.f.Fd()), buf, offset)
	if err != nil {
		return errors.Wrap(err, "aio: pwrite")
	}
	return nil
}
