package aio

import "errors"

var (
	// ErrIOSubmit is returned by SubmitRead/SubmitWrite when the request
	// is rejected before queuing: a non-positive page count, or a write
	// buffer whose length is zero or not a multiple of PageSize. Buffer
	// alignment is not checked. Submitting to a closed Context returns a
	// separate error.
	ErrIOSubmit = errors.New("aio: submit failed")

	// ErrIOComplete is the completion-side error set on a Handle when the
	// underlying read or write syscall failed.
	ErrIOComplete = errors.New("aio: completion failed")

	errClosed = errors.New("aio: context closed")
)
