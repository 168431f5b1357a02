package mot

import (
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// SeqInfo mirrors the subset of a MOTChallenge seqinfo.ini this harness
// cares about for the optional display path: the image subdirectory,
// extension, frame rate and sequence length.
type SeqInfo struct {
	ImDir     string
	ImExt     string
	FrameRate int
	SeqLength int
	ImWidth   int
	ImHeight  int
}

// ReadSeqInfo parses <seqDir>/seqinfo.ini. Its absence is not an error
// for callers that only need it for display; ReadSeqInfo itself
// reports a wrapped error so the caller can decide whether to ignore
// it (display falls back to defaults, frame walking does not need it).
func ReadSeqInfo(seqDir string) (SeqInfo, error) {
	path := filepath.Join(seqDir, "seqinfo.ini")
	cfg, err := ini.Load(path)
	if err != nil {
		return SeqInfo{}, fmt.Errorf("mot: loading %s: %w", path, err)
	}
	sec := cfg.Section("Sequence")
	return SeqInfo{
		ImDir:     sec.Key("imDir").MustString("img1"),
		ImExt:     sec.Key("imExt").MustString(".jpg"),
		FrameRate: sec.Key("frameRate").MustInt(30),
		SeqLength: sec.Key("seqLength").MustInt(0),
		ImWidth:   sec.Key("imWidth").MustInt(0),
		ImHeight:  sec.Key("imHeight").MustInt(0),
	}, nil
}
