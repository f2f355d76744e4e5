package telemetry

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete cloth state for replay.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`
	Tick    int32 `json:"tick"`

	Params    cloth.Params          `json:"params"`
	Particles []cloth.ParticleState `json:"particles"`
	Triangles []int32               `json:"triangles"`
	Vertices  []r3.Vec              `json:"vertices,omitempty"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// CaptureSnapshot records the grid's current state.
func CaptureSnapshot(g *cloth.Grid, seed int64, tick int32, bm *Bookmark) *Snapshot {
	particles, triangles := g.Export()
	return &Snapshot{
		Version:   SnapshotVersion,
		Seed:      seed,
		Tick:      tick,
		Params:    g.Params(),
		Particles: particles,
		Triangles: triangles,
		Vertices:  append([]r3.Vec(nil), g.Vertices()...),
		Bookmark:  bm,
	}
}

// Apply restores the snapshot into g.
func (s *Snapshot) Apply(g *cloth.Grid) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	if err := g.Restore(s.Params, s.Particles, s.Triangles, s.Vertices); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}

// SaveSnapshot writes snapshot into dir as gzipped JSON and returns the
// path. The file is written under a temporary name and renamed into place.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if bm := snapshot.Bookmark; bm != nil {
		name += "_" + strings.ReplaceAll(string(bm.Type), " ", "_")
	}
	path := filepath.Join(dir, name+".json.gz")

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	zw := gzip.NewWriter(tmp)
	zw.Name = name + ".json"
	err = json.NewEncoder(zw).Encode(snapshot)
	err = errors.Join(err, zw.Close(), tmp.Close())
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot. Plain JSON files
// are accepted too.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, _ := br.Peek(2); bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", filepath.Base(path), err)
	}
	return &snapshot, nil
}
