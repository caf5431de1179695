// Package library manages the on-disk shape library: canonicalized profile
// boundaries stored one file per shape, plus a JSON index with derived
// properties for listing without decoding geometry.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/piwi3910/panelcut/internal/geom"
	"github.com/piwi3910/panelcut/internal/kernel"
	"github.com/piwi3910/panelcut/internal/profile"
)

const indexFile = "index.json"

// Entry is one stored shape's index record.
type Entry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	BBoxW float64 `json:"bbox_width"`
	BBoxH float64 `json:"bbox_height"`
	Area  float64 `json:"area"`
	File  string  `json:"file"`
}

// Library is a directory-backed shape store.
type Library struct {
	dir     string
	entries []Entry
}

// DefaultDir returns the default library location under the user config dir.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "panelcut", "library"), nil
}

// Open loads the library index from dir, creating the directory if needed.
// A missing index means an empty library.
func Open(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	lib := &Library{dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lib, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &lib.entries); err != nil {
		return nil, fmt.Errorf("library index %s: %w", dir, err)
	}
	return lib, nil
}

// Dir returns the library's directory.
func (l *Library) Dir() string {
	return l.dir
}

// List returns the index entries sorted by name.
func (l *Library) List() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Ingest canonicalizes the profile stored at srcPath and adds it to the
// library under the given name and kind. The stored form is the outer wire
// only, counter-clockwise, validated; holes in the source are discarded
// since placements use boundaries.
func (l *Library) Ingest(k kernel.Kernel, srcPath, name, kind string) (*Entry, error) {
	wire, err := profile.Load(k, srcPath)
	if err != nil {
		return nil, err
	}

	face, err := k.BuildFace(wire)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", srcPath, err)
	}
	if err := k.Validate(face); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", srcPath, err)
	}

	id := uuid.New().String()[:8]
	file := id + ".pbrep"
	if err := k.WriteBREP(face, filepath.Join(l.dir, file)); err != nil {
		return nil, err
	}

	min, max := wire.BoundingBox()
	entry := Entry{
		ID:    id,
		Name:  name,
		Kind:  kind,
		BBoxW: max.X - min.X,
		BBoxH: max.Y - min.Y,
		Area:  k.Area(face),
		File:  file,
	}
	l.entries = append(l.entries, entry)
	if err := l.saveIndex(); err != nil {
		return nil, err
	}
	return &entry, nil
}

// IngestOutline stores an already-built outline under the given name.
func (l *Library) IngestOutline(k kernel.Kernel, wire geom.Outline, name, kind string) (*Entry, error) {
	if !wire.IsCCW() {
		wire = wire.Reverse()
	}
	face, err := k.BuildFace(wire)
	if err != nil {
		return nil, err
	}
	tmp := filepath.Join(l.dir, ".ingest.pbrep")
	if err := k.WriteBREP(face, tmp); err != nil {
		return nil, err
	}
	defer os.Remove(tmp)
	return l.Ingest(k, tmp, name, kind)
}

// Resolve maps a profile reference (entry ID, entry name, or a direct file
// path) to the path of its stored geometry.
func (l *Library) Resolve(ref string) (string, error) {
	for _, e := range l.entries {
		if e.ID == ref || e.Name == ref {
			return filepath.Join(l.dir, e.File), nil
		}
	}
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}
	return "", fmt.Errorf("profile %q not found in library %s", ref, l.dir)
}

// Remove deletes an entry and its stored geometry.
func (l *Library) Remove(ref string) error {
	for i, e := range l.entries {
		if e.ID == ref || e.Name == ref {
			if err := os.Remove(filepath.Join(l.dir, e.File)); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return l.saveIndex()
		}
	}
	return fmt.Errorf("profile %q not found in library %s", ref, l.dir)
}

func (l *Library) saveIndex() error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.dir, indexFile), data, 0644)
}
