// Package mot is the benchmark I/O harness: it walks MOTChallenge-style
// sequence directories, parses detection CSVs, and writes tracker
// output in the same column layout. None of this package is part of
// the tracker's core; it exists only to exercise it against the
// on-disk benchmark format.
package mot

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nmichlo/sort-go/geometry"
	"github.com/nmichlo/sort-go/track"
)

// WalkSequences globs seqPath/phase/*/det/det.txt and returns the
// sequence directories (the parent of each det/ directory), sorted for
// determinism.
func WalkSequences(seqPath, phase string) ([]string, error) {
	pattern := filepath.Join(seqPath, phase, "*", "det", "det.txt")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("mot: globbing %s: %w", pattern, err)
	}
	seqs := make([]string, 0, len(matches))
	for _, m := range matches {
		seqs = append(seqs, filepath.Dir(filepath.Dir(m)))
	}
	sort.Strings(seqs)
	return seqs, nil
}

// ReadDetections parses a det.txt file in MOTChallenge format
// (frame,-1,x1,y1,w,h,score,-1,-1,-1) into a per-frame map of
// track.Detection, converting width/height to corner coordinates.
// Lines with non-positive width or height are dropped.
func ReadDetections(path string) (map[int][]track.Detection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mot: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	out := make(map[int][]track.Detection)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if len(rec) < 7 {
			continue
		}
		frame, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			continue
		}
		x1, err1 := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		y1, err2 := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		w, err3 := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
		h, err4 := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
		score, err5 := strconv.ParseFloat(strings.TrimSpace(rec[6]), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			continue
		}
		if w <= 0 || h <= 0 {
			continue
		}
		out[frame] = append(out[frame], track.Detection{
			Box:   geometry.Box{X1: x1, Y1: y1, X2: x1 + w, Y2: y1 + h},
			Score: score,
		})
	}
	return out, nil
}

// ResultWriter appends MOTChallenge-format tracker output lines
// (frame,id,x1,y1,w,h,1,-1,-1,-1) to a file, one write per frame.
type ResultWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewResultWriter creates (or truncates) path for writing.
func NewResultWriter(path string) (*ResultWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mot: creating output dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("mot: creating %s: %w", path, err)
	}
	return &ResultWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteFrame appends one line per emission for the given frame number.
func (rw *ResultWriter) WriteFrame(frame int, emissions []track.Emission) error {
	for _, e := range emissions {
		w := e.Box.X2 - e.Box.X1
		h := e.Box.Y2 - e.Box.Y1
		_, err := fmt.Fprintf(rw.w, "%d,%d,%.2f,%.2f,%.2f,%.2f,1,-1,-1,-1\n",
			frame, e.ID, e.Box.X1, e.Box.Y1, w, h)
		if err != nil {
			return fmt.Errorf("mot: writing frame %d: %w", frame, err)
		}
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (rw *ResultWriter) Close() error {
	if err := rw.w.Flush(); err != nil {
		rw.f.Close()
		return fmt.Errorf("mot: flushing output: %w", err)
	}
	return rw.f.Close()
}

// MaxFrame returns the largest frame key present in detections, or 0
// if detections is empty.
func MaxFrame(detections map[int][]track.Detection) int {
	max := 0
	for frame := range detections {
		if frame > max {
			max = frame
		}
	}
	return max
}
