// Package naming generates collision-free destination names: a sequence
// counter seeded from filenames already present in the output tree, plus
// per-custom-name usage counts.
package naming

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// sequenceToken matches the 8-digit sequence number embedded in generated
// filenames, delimited by hyphens.
var sequenceToken = regexp.MustCompile(`-(\d{8})-`)

// Sequencer tracks the live counter and custom-name usage counts for one run.
// State is in-memory only; the next run re-seeds from the output tree.
type Sequencer struct {
	counter int
	counts  map[string]int
}

// NewSequencer returns a sequencer starting at 1 with no name history.
func NewSequencer() *Sequencer {
	return &Sequencer{counter: 1, counts: make(map[string]int)}
}

// Seed walks the output tree, excluding the originals subtree, and sets the
// counter to one past the highest sequence token found. A missing output
// directory seeds to 1.
func Seed(outDir, originalsDir string) (*Sequencer, error) {
	s := NewSequencer()

	maxSeen := 0
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries don't block seeding
		}
		if d.IsDir() {
			if path == originalsDir {
				return filepath.SkipDir
			}
			return nil
		}
		m := sequenceToken.FindStringSubmatch(d.Name())
		if m == nil {
			return nil
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > maxSeen {
			maxSeen = n
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	s.counter = maxSeen + 1
	return s, nil
}

// Counter returns the next sequence number that Resolve("") would use.
func (s *Sequencer) Counter() int {
	return s.counter
}

// Resolve produces the name part for one destination filename. With a custom
// name the usage count is incremented and a "-N" suffix appended from the
// second use on; counts are never decremented, which keeps generated names
// unique for the run. With no custom name the sequence counter is formatted
// as an 8-digit zero-padded decimal and advanced.
func (s *Sequencer) Resolve(customName string) string {
	if customName != "" {
		s.counts[customName]++
		if count := s.counts[customName]; count > 1 {
			return fmt.Sprintf("%s-%d", customName, count)
		}
		return customName
	}

	name := fmt.Sprintf("%08d", s.counter)
	s.counter++
	return name
}
