package app

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// replayLine is one line of a replay file.
type replayLine struct {
	AtMs  int64             `json:"at_ms"`
	Index *detector.Point3D `json:"index,omitempty"`
	Thumb *detector.Point3D `json:"thumb,omitempty"`
}

// LoadScript parses a replay file: one JSON object per line with at_ms and,
// when a hand was seen, the index and thumb tip positions. Timestamps are
// offsets from start.
func LoadScript(r io.Reader, start time.Time) (*ScriptSource, error) {
	var steps []ScriptStep

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var rl replayLine
		if err := json.Unmarshal(line, &rl); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if (rl.Index == nil) != (rl.Thumb == nil) {
			return nil, fmt.Errorf("line %d: index and thumb must both be set or both be absent", n)
		}
		if rl.Index == nil {
			steps = append(steps, NoHand())
			continue
		}

		steps = append(steps, Observe(gesture.Observation{
			IndexTip: *rl.Index,
			ThumbTip: *rl.Thumb,
			At:       start.Add(time.Duration(rl.AtMs) * time.Millisecond),
		}))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return NewScriptSource(steps...), nil
}

// OpenScript loads the replay file at path. Files compressed with gzip or
// xz are recognized by their magic bytes.
func OpenScript(path string, start time.Time) (*ScriptSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, _ := br.Peek(len(xzMagic))

	var r io.Reader = br
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip replay: %w", err)
		}
		defer gz.Close()
		r = gz
	case bytes.HasPrefix(header, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open xz replay: %w", err)
		}
		r = xr
	}

	src, err := LoadScript(r, start)
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", path, err)
	}
	return src, nil
}
