// Package app provides application state, events, and undo history.
package app

import (
	"sync"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/diagram"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/project"
	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

// maxUndoDepth bounds the snapshot history.
const maxUndoDepth = 50

// State holds the application state: the open diagram, the component
// catalog, and the project file it came from. All mutation goes through
// methods here so events and the undo history stay consistent.
type State struct {
	mu sync.RWMutex

	Diagram *diagram.Diagram
	Catalog *catalog.Catalog

	ProjectPath string
	Modified    bool

	projectMeta *project.File

	undo []diagram.Snapshot

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventCatalogReloaded
	EventDiagramChanged
	EventSelectionChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty diagram.
func NewState(cat *catalog.Catalog) *State {
	return &State{
		Diagram:   diagram.New(),
		Catalog:   cat,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// CurrentPath returns the open project's file path, empty for an unsaved
// project.
func (s *State) CurrentPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ProjectPath
}

// IsModified reports whether the project has unsaved changes.
func (s *State) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Modified
}

// SetCatalog swaps in a reloaded catalog. The open diagram keeps its
// existing instances; only future placements see the new definitions.
func (s *State) SetCatalog(cat *catalog.Catalog) {
	s.mu.Lock()
	s.Catalog = cat
	s.mu.Unlock()
	s.Emit(EventCatalogReloaded, cat)
}

// Checkpoint pushes the current diagram onto the undo history. Callers
// invoke it once per user action, before the first mutation of that action,
// so one undo step reverts the whole action.
func (s *State) Checkpoint() {
	s.mu.Lock()
	s.undo = append(s.undo, s.Diagram.Snapshot())
	if len(s.undo) > maxUndoDepth {
		s.undo = s.undo[1:]
	}
	s.mu.Unlock()
}

// Undo restores the most recent checkpoint. Returns false when the history
// is empty.
func (s *State) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	snap := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.Diagram = diagram.FromSnapshot(s.Catalog, snap)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventDiagramChanged, nil)
	return true
}

// CanUndo reports whether the undo history is non-empty.
func (s *State) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

// AddComponent places a new instance of a catalog type and records an undo
// checkpoint.
func (s *State) AddComponent(typeID string, pos geometry.Point2D) (*diagram.Instance, error) {
	s.Checkpoint()
	inst, err := s.Diagram.AddComponent(s.Catalog, typeID, pos)
	if err != nil {
		s.DropCheckpoint()
		return nil, err
	}
	s.SetModified(true)
	s.Emit(EventDiagramChanged, inst)
	return inst, nil
}

// DeleteComponent removes an instance and its cables.
func (s *State) DeleteComponent(id string) error {
	s.Checkpoint()
	if err := s.Diagram.DeleteComponent(id); err != nil {
		s.DropCheckpoint()
		return err
	}
	s.SetModified(true)
	s.Emit(EventDiagramChanged, nil)
	return nil
}

// MirrorComponent flips an instance horizontally.
func (s *State) MirrorComponent(id string) error {
	s.Checkpoint()
	if err := s.Diagram.MirrorComponent(id); err != nil {
		s.DropCheckpoint()
		return err
	}
	s.SetModified(true)
	s.Emit(EventDiagramChanged, nil)
	return nil
}

// Connect creates a cable between two connection points.
func (s *State) Connect(a, b diagram.Endpoint) (*diagram.Wire, error) {
	s.Checkpoint()
	w, err := s.Diagram.Connect(a, b)
	if err != nil {
		s.DropCheckpoint()
		return nil, err
	}
	s.SetModified(true)
	s.Emit(EventDiagramChanged, w)
	return w, nil
}

// DeleteWire removes a cable.
func (s *State) DeleteWire(id string) error {
	s.Checkpoint()
	if err := s.Diagram.DeleteWire(id); err != nil {
		s.DropCheckpoint()
		return err
	}
	s.SetModified(true)
	s.Emit(EventDiagramChanged, nil)
	return nil
}

// RemoveAllOfType removes every instance of a catalog type, returning the
// count removed.
func (s *State) RemoveAllOfType(typeID string) int {
	s.Checkpoint()
	n := s.Diagram.RemoveAllOfType(typeID)
	if n == 0 {
		s.DropCheckpoint()
		return 0
	}
	s.SetModified(true)
	s.Emit(EventDiagramChanged, nil)
	return n
}

// DropCheckpoint discards the most recent checkpoint. Callers use it when
// the action that pushed the checkpoint turned out to be a no-op.
func (s *State) DropCheckpoint() {
	s.mu.Lock()
	if len(s.undo) > 0 {
		s.undo = s.undo[:len(s.undo)-1]
	}
	s.mu.Unlock()
}

// NewProject replaces the open diagram with an empty one and clears the
// project path and undo history.
func (s *State) NewProject() {
	s.mu.Lock()
	s.Diagram = diagram.New()
	s.projectMeta = nil
	s.ProjectPath = ""
	s.Modified = false
	s.undo = nil
	s.mu.Unlock()
	s.Emit(EventDiagramChanged, nil)
}

// LoadProject opens a project file and rebuilds the diagram against the
// current catalog. Entries that no longer resolve are dropped silently.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.projectMeta = proj
	s.Diagram = proj.BuildDiagram(s.Catalog)
	s.ProjectPath = path
	s.Modified = false
	s.undo = nil
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject writes the diagram to a project file.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	proj := project.FromDiagram(s.Diagram, s.projectMeta)
	s.mu.RUnlock()

	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.projectMeta = proj
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}
