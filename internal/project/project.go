// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
)

// CurrentVersion is the project file format version written by Save.
const CurrentVersion = 1

// Extension is the project file extension.
const Extension = ".hsvproj"

// File represents a hardware setup project file (.hsvproj). The diagram is
// embedded as flat id-keyed records; no live object graph is serialized.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`

	Components []diagram.ComponentRecord `json:"components"`
	Cables     []diagram.CableRecord     `json:"cables"`
}

// New creates an empty project file with timestamps set to now.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// FromDiagram captures the current diagram into a project file, preserving
// the name and creation time of prev if given.
func FromDiagram(d *diagram.Diagram, prev *File) *File {
	f := New("")
	if prev != nil {
		f.Name = prev.Name
		f.Description = prev.Description
		f.Created = prev.Created
	}
	snap := d.Snapshot()
	f.Components = snap.Components
	f.Cables = snap.Cables
	return f
}

// BuildDiagram reconstructs the diagram from the file's records. Components
// with unknown type ids and cables with dangling references are silently
// dropped; the remainder of the project still loads.
func (p *File) BuildDiagram(cat *catalog.Catalog) *diagram.Diagram {
	return diagram.FromSnapshot(cat, diagram.Snapshot{
		Components: p.Components,
		Cables:     p.Cables,
	})
}

// Load loads a project from a .hsvproj file. A file that exists but does
// not parse as a project yields ErrInvalidProjectData.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", diagram.ErrInvalidProjectData, filepath.Base(path), err)
	}
	if proj.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", diagram.ErrInvalidProjectData, filepath.Base(path), proj.Version)
	}

	return &proj, nil
}

// Save saves the project to a file, bumping the modified timestamp.
func (p *File) Save(path string) error {
	p.Modified = time.Now()
	p.Version = CurrentVersion

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
