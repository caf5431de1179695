package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/panelcut/internal/panel"
)

// PlacementSpec is one placement in a layout file.
type PlacementSpec struct {
	Profile  string  `json:"profile" yaml:"profile"`
	Kind     string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	X        float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y        float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Angle    float64 `json:"angle,omitempty" yaml:"angle,omitempty"`
	Edge     string  `json:"edge,omitempty" yaml:"edge,omitempty"`
	Position float64 `json:"position,omitempty" yaml:"position,omitempty"`
}

// PanelSpec is the panel blank in a layout file.
type PanelSpec struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// LayoutRequest is one panel build described declaratively: a blank plus
// an ordered list of placements. The placement order is significant since
// edge cuts apply sequentially.
type LayoutRequest struct {
	Name       string          `json:"name" yaml:"name"`
	Panel      PanelSpec       `json:"panel" yaml:"panel"`
	Placements []PlacementSpec `json:"placements" yaml:"placements"`
}

// LoadLayout reads a layout request from a YAML or JSON file, chosen by
// extension (.yaml/.yml vs .json).
func LoadLayout(path string) (*LayoutRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var req LayoutRequest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("layout %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("layout %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("layout %s: unsupported extension (want .yaml, .yml, or .json)", path)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &req, nil
}

// SaveLayout writes a layout request as YAML or JSON, chosen by extension.
func SaveLayout(path string, req *LayoutRequest) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(req)
	case ".json":
		data, err = json.MarshalIndent(req, "", "  ")
	default:
		return fmt.Errorf("layout %s: unsupported extension (want .yaml, .yml, or .json)", path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the request for structural problems.
func (r *LayoutRequest) Validate() error {
	if r.Panel.Width <= 0 || r.Panel.Height <= 0 {
		return fmt.Errorf("panel dimensions must be positive (got %.1f x %.1f)",
			r.Panel.Width, r.Panel.Height)
	}
	for i, p := range r.Placements {
		if p.Profile == "" {
			return fmt.Errorf("placement %d has no profile reference", i+1)
		}
	}
	return nil
}

// ToPlacements converts the specs into pipeline placements. Unknown kind
// or edge values are reported rather than silently defaulted.
func (r *LayoutRequest) ToPlacements() ([]panel.Placement, error) {
	out := make([]panel.Placement, 0, len(r.Placements))
	for i, spec := range r.Placements {
		pl := panel.Placement{
			ProfileRef: spec.Profile,
			X:          spec.X,
			Y:          spec.Y,
			AngleDeg:   spec.Angle,
			Position:   spec.Position,
		}
		if spec.Kind != "" {
			kind, err := panel.ParseKind(spec.Kind)
			if err != nil {
				return nil, fmt.Errorf("placement %d: %w", i+1, err)
			}
			pl.Kind = kind
		}
		if spec.Edge != "" {
			edge, err := panel.ParseEdge(spec.Edge)
			if err != nil {
				return nil, fmt.Errorf("placement %d: %w", i+1, err)
			}
			pl.Edge = edge
		}
		out = append(out, pl)
	}
	return out, nil
}
