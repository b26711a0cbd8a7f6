package stats

import "testing"

func TestCountersAndSnapshot(t *testing.T) {
	var s Stats
	s.AddIOsSubmitted(3)
	s.AddBytesEncoded(4096)
	s.AddChecksumFailures(1)

	snap := s.Snapshot()
	if snap.IOsSubmitted != 3 {
		t.Fatalf("IOsSubmitted = %d, want 3", snap.IOsSubmitted)
	}
	if snap.BytesEncoded != 4096 {
		t.Fatalf("BytesEncoded = %d, want 4096", snap.BytesEncoded)
	}
	if snap.ChecksumFailures != 1 {
		t.Fatalf("ChecksumFailures = %d, want 1", snap.ChecksumFailures)
	}
}

func TestHeaderAndToSliceSameLength(t *testing.T) {
	var s Stats
	if len(s.Header()) != len(s.Snapshot().ToSlice()) {
		t.Fatalf("Header has %d columns, ToSlice has %d", len(s.Header()), len(s.Snapshot().ToSlice()))
	}
}
