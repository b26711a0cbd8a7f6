package stats

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// CSVLogger periodically appends a timestamped row of s's counters to
// path, writing a header row if the file is empty. It returns at once
// when path is empty or interval is zero, and returns when the file
// cannot be opened; otherwise it runs for the life of the process.
// Callers run it in its own goroutine, matching how
// xtaci-kcptun/std/snmp.go's SnmpLogger is launched from server/main.go.
func CSVLogger(path string, interval time.Duration, s *Stats) {
	if path == "" || interval == 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		logdir, logfile := filepath.Split(path)
		f, err := os.OpenFile(logdir+time.Now().Format(logfile), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			log.Println(err)
			return
		}
		w := csv.NewWriter(f)
		if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
			if err := w.Write(append([]string{"Unix"}, s.Header()...)); err != nil {
				log.Println(err)
			}
		}
		snap := s.Snapshot()
		if err := w.Write(append([]string{fmt.Sprint(time.Now().Unix())}, snap.ToSlice()...)); err != nil {
			log.Println(err)
		}
		w.Flush()
		f.Close()
	}
}
