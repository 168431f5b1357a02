// Command sorttrack runs the tracker over MOTChallenge-style benchmark
// sequences: for every sequence directory it finds, it feeds each
// frame's detections through a fresh tracker instance and writes the
// emitted tracks in the same benchmark format, optionally rendering
// annotated frames along the way.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nmichlo/sort-go/color"
	"github.com/nmichlo/sort-go/internal/display"
	"github.com/nmichlo/sort-go/mot"
	"github.com/nmichlo/sort-go/track"
)

type flags struct {
	display      bool
	seqPath      string
	phase        string
	maxAge       int
	minHits      int
	iouThreshold float64
	palette      string
}

func main() {
	f := &flags{}
	root := &cobra.Command{
		Use:   "sorttrack",
		Short: "Online multi-object tracking over MOTChallenge-style sequences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}
	root.Flags().BoolVar(&f.display, "display", false, "render annotated frames to output/<seq>/display")
	root.Flags().StringVar(&f.seqPath, "seq-path", "data", "root directory containing <phase>/<seq>/det/det.txt")
	root.Flags().StringVar(&f.phase, "phase", "train", "benchmark phase subdirectory to scan")
	root.Flags().IntVar(&f.maxAge, "max-age", 1, "frames a track may coast before removal")
	root.Flags().IntVar(&f.minHits, "min-hits", 3, "consecutive matches required before steady-state emission")
	root.Flags().Float64Var(&f.iouThreshold, "iou-threshold", 0.3, "minimum IoU for an association to count")
	root.Flags().StringVar(&f.palette, "palette", "", "comma-separated hex colors (e.g. #ff0000,#00ff00) cycled by id in --display output")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(f *flags) error {
	if f.display {
		if _, err := os.Stat(filepath.Join(f.seqPath, "mot_benchmark")); err != nil {
			return fmt.Errorf("sorttrack: --display requires %s to exist: %w",
				filepath.Join(f.seqPath, "mot_benchmark"), err)
		}
	}

	palette, err := parsePalette(f.palette)
	if err != nil {
		return err
	}

	seqs, err := mot.WalkSequences(f.seqPath, f.phase)
	if err != nil {
		return err
	}
	if len(seqs) == 0 {
		log.Printf("sorttrack: no sequences found under %s/%s", f.seqPath, f.phase)
		return nil
	}

	if err := os.MkdirAll("output", 0o755); err != nil {
		return fmt.Errorf("sorttrack: creating output dir: %w", err)
	}

	barWidth := 40
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		barWidth = w - 20
	}

	start := time.Now()
	totalFrames := 0

	for _, seqDir := range seqs {
		seqName := filepath.Base(seqDir)
		detPath := filepath.Join(seqDir, "det", "det.txt")
		detections, err := mot.ReadDetections(detPath)
		if err != nil {
			return err
		}
		lastFrame := mot.MaxFrame(detections)

		writer, err := mot.NewResultWriter(filepath.Join("output", seqName+".txt"))
		if err != nil {
			return err
		}

		tr := track.NewTracker(track.Config{
			MaxAge:       f.maxAge,
			MinHits:      f.minHits,
			IoUThreshold: f.iouThreshold,
		})

		var renderer *display.Renderer
		imDir, imExt := "img1", ".jpg"
		if f.display {
			if info, err := mot.ReadSeqInfo(seqDir); err == nil {
				imDir, imExt = info.ImDir, info.ImExt
			}
			renderer = display.NewRenderer(filepath.Join("output", seqName, "display"), palette)
			if err := os.MkdirAll(filepath.Join("output", seqName, "display"), 0o755); err != nil {
				return fmt.Errorf("sorttrack: preparing display output: %w", err)
			}
		}

		bar := progressbar.NewOptions(lastFrame,
			progressbar.OptionSetDescription(seqName),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("fps"),
			progressbar.OptionSetWidth(barWidth),
			progressbar.OptionClearOnFinish(),
		)

		for frame := 1; frame <= lastFrame; frame++ {
			emissions := tr.Step(detections[frame])
			if err := writer.WriteFrame(frame, emissions); err != nil {
				return err
			}
			if renderer != nil {
				imgPath := filepath.Join(seqDir, imDir, fmt.Sprintf("%06d%s", frame, imExt))
				if err := renderer.RenderFrame(imgPath, frame, emissions); err != nil {
					log.Printf("sorttrack: %v", err)
				}
			}
			_ = bar.Add(1)
			totalFrames++
		}

		if err := writer.Close(); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("total time: %.2fs, %d frames, %.1f FPS\n",
		elapsed.Seconds(), totalFrames, float64(totalFrames)/elapsed.Seconds())
	return nil
}

// parsePalette turns a comma-separated list of hex colors into a
// display palette. An empty string yields a nil palette, telling the
// renderer to fall back to its own default cycle.
func parsePalette(s string) ([]color.Color, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	palette := make([]color.Color, len(parts))
	for i, hex := range parts {
		c, err := color.HexToBGR(strings.TrimSpace(hex))
		if err != nil {
			return nil, fmt.Errorf("sorttrack: --palette: %w", err)
		}
		palette[i] = c
	}
	return palette, nil
}
