package app

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sampleReplay = `{"at_ms":0,"index":{"x":0.5,"y":0.5,"z":0},"thumb":{"x":0.5,"y":0.5,"z":0.01}}

{"at_ms":40}
{"at_ms":80,"index":{"x":0.52,"y":0.5,"z":0},"thumb":{"x":0.52,"y":0.5,"z":0.2}}
`

func TestLoadScript(t *testing.T) {
	src, err := LoadScript(strings.NewReader(sampleReplay), t0)
	require.NoError(t, err)
	require.Equal(t, 3, src.Remaining())

	first, err := src.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first.Observation)
	assert.Equal(t, t0, first.Observation.At)
	assert.InDelta(t, 0.01, first.Observation.ThumbTip.Z, 1e-9)

	second, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, second.Observation)

	third, err := src.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, third.Observation)
	assert.Equal(t, t0.Add(80*time.Millisecond), third.Observation.At)
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{name: "bad json", script: "{\n", want: "line 1"},
		{name: "thumb without index", script: `{"at_ms":0}` + "\n" + `{"at_ms":1,"thumb":{"x":0,"y":0,"z":0}}`, want: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript(strings.NewReader(tt.script), t0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOpenScript_Compression(t *testing.T) {
	compress := map[string]func(io.Writer) io.WriteCloser{
		"plain": func(w io.Writer) io.WriteCloser { return nopWriteCloser{w} },
		"gzip":  func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) },
		"xz": func(w io.Writer) io.WriteCloser {
			xw, err := xz.NewWriter(w)
			if err != nil {
				t.Fatalf("xz.NewWriter() error = %v", err)
			}
			return xw
		},
	}

	for name, wrap := range compress {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			w := wrap(&buf)
			_, err := io.WriteString(w, sampleReplay)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			path := filepath.Join(t.TempDir(), "replay.jsonl")
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

			src, err := OpenScript(path, t0)
			require.NoError(t, err)
			assert.Equal(t, 3, src.Remaining())
		})
	}
}

func TestOpenScript_Errors(t *testing.T) {
	_, err := OpenScript(filepath.Join(t.TempDir(), "missing.jsonl"), t0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0644))
	_, err = OpenScript(path, t0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.jsonl")
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
