package watchdog

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ProcReader reads resident memory from /proc/self/status, the Linux
// analogue of getRAMUsedByThis: it scans for the "VmRSS:" line, whose
// value is already reported in kilobytes.
type ProcReader struct {
	path string
}

// NewProcReader builds a ProcReader over /proc/self/status.
func NewProcReader() *ProcReader {
	return &ProcReader{path: "/proc/self/status"}
}

func (r *ProcReader) ResidentKB() (int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return 0, errors.Wrap(err, "watchdog: opening /proc/self/status")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, errors.New("watchdog: malformed VmRSS line")
		}
		kb, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, errors.Wrap(err, "watchdog: parsing VmRSS value")
		}
		return kb, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrap(err, "watchdog: scanning /proc/self/status")
	}
	return 0, errors.New("watchdog: VmRSS not found in /proc/self/status")
}
