// Package view owns the screen-to-model coordinate mapping: zoom level,
// pan offset, and grid snapping. All functions are pure synchronous
// arithmetic; nothing here blocks or touches the model.
package view

import (
	"math"

	"github.com/PhilipU/HardwareSetupVisualizer/pkg/geometry"
)

const (
	MinZoom  = 0.1
	MaxZoom  = 5.0
	ZoomStep = 1.25

	// DefaultGridSize is the snap grid in model units.
	DefaultGridSize = 20.0
)

// Viewport maps between screen (pointer) coordinates and model (diagram)
// coordinates: screen = model*zoom + pan, with pan held in screen pixels.
type Viewport struct {
	zoom float64
	pan  geometry.Point2D
	size geometry.Size // logical drawing-surface size in screen pixels
}

// New creates a viewport at zoom 1 with no pan.
func New(width, height float64) *Viewport {
	return &Viewport{
		zoom: 1.0,
		size: geometry.NewSize(width, height),
	}
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// Pan returns the current pan offset in screen pixels.
func (v *Viewport) Pan() geometry.Point2D {
	return v.pan
}

// Size returns the logical drawing-surface size.
func (v *Viewport) Size() geometry.Size {
	return v.size
}

// ToModel converts a screen point to model space.
func (v *Viewport) ToModel(screen geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (screen.X - v.pan.X) / v.zoom,
		Y: (screen.Y - v.pan.Y) / v.zoom,
	}
}

// ToScreen converts a model point to screen space.
func (v *Viewport) ToScreen(model geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: model.X*v.zoom + v.pan.X,
		Y: model.Y*v.zoom + v.pan.Y,
	}
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(zoom float64) {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	v.zoom = zoom
}

// ZoomAt multiplies the zoom by factor while keeping the model point under
// the given screen position stationary, so the content under the cursor
// does not jump during scroll zoom.
func (v *Viewport) ZoomAt(screen geometry.Point2D, factor float64) {
	anchor := v.ToModel(screen)
	v.SetZoom(v.zoom * factor)
	v.pan = geometry.Point2D{
		X: screen.X - anchor.X*v.zoom,
		Y: screen.Y - anchor.Y*v.zoom,
	}
}

// PanBy shifts the view by a screen-pixel delta.
func (v *Viewport) PanBy(delta geometry.Point2D) {
	v.pan = v.pan.Add(delta)
}

// Resize updates the logical drawing-surface size. Zoom and pan are
// deliberately left untouched.
func (v *Viewport) Resize(width, height float64) {
	v.size = geometry.NewSize(width, height)
}

// SnapToGrid rounds a model point to the nearest grid intersection.
// A grid size of zero or less disables snapping.
func SnapToGrid(p geometry.Point2D, grid float64) geometry.Point2D {
	if grid <= 0 {
		return p
	}
	return geometry.Point2D{
		X: math.Round(p.X/grid) * grid,
		Y: math.Round(p.Y/grid) * grid,
	}
}
