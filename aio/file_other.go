//go:build !linux

package aio

import (
	"os"

	"github.com/pkg/errors"
)

// Open opens path without O_DIRECT on platforms that don't guarantee it;
// readAt/writeAt fall back to ReadAt/WriteAt.
func Open(path string, writable bool) (*File, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "aio: open %s", path)
	}
	return &File{f: f}, nil
}

func (f *File) readAt(buf []byte, offset int64) error {
	_, err := f.f.ReadAt(buf, offset)
	if err != nil {
		return errors.Wrap(err, "aio: read")
	}
	return nil
}

func (f *File) writeAt(buf []byte, offset int64) error {
	_, err := f.f.WriteAt(buf, offset)
	if err != nil {
		return errors.Wrap(err, "aio: write")
	}
	return nil
}
