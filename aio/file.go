package aio

import "os"

// File is a handle opened for page-aligned I/O. Open (platform-specific,
// see file_linux.go / file_other.go) decides whether O_DIRECT is
// attached; readAt/writeAt are the platform-specific syscalls the worker
// goroutines in Context drive.
type File struct {
	f *os.File
}

// Close closes the underlying file.
func (f *File) Close() error { return f.f.Close() }
