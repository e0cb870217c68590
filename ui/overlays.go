package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable layer or panel.
type OverlayID string

const (
	OverlayTank     OverlayID = "tank"
	OverlayRay      OverlayID = "threat_ray"
	OverlayStats    OverlayID = "school_stats"
	OverlayPerf     OverlayID = "perf"
	OverlayTuning   OverlayID = "tuning"
	OverlayControls OverlayID = "controls"
)

// Overlay categories, listed in this order by the controls panel.
const (
	CategoryScene  = "scene"
	CategoryPanels = "panels"
)

// OverlayDescriptor describes one overlay and the key that toggles it.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // e.g. "B", "F3"
	Category    string
	Default     bool        // enabled at startup
	Exclusive   []OverlayID // switched off when this one is switched on
}

var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayTank, Name: "Tank Bounds", Description: "Wireframe of the swimming volume",
		Key: rl.KeyB, KeyLabel: "B", Category: CategoryScene, Default: true},
	{ID: OverlayRay, Name: "Threat Ray", Description: "Line along the active threat ray",
		Key: rl.KeyR, KeyLabel: "R", Category: CategoryScene, Default: true},
	{ID: OverlayStats, Name: "School Stats", Description: "Fleeing count and speed summary",
		Key: rl.KeyI, KeyLabel: "I", Category: CategoryPanels, Default: true},
	{ID: OverlayPerf, Name: "Performance", Description: "Per-phase frame timings",
		Key: rl.KeyF3, KeyLabel: "F3", Category: CategoryPanels},
	{ID: OverlayTuning, Name: "Flee Tuning", Description: "Sliders for flee radius, strength and speed",
		Key: rl.KeyT, KeyLabel: "T", Category: CategoryPanels, Exclusive: []OverlayID{OverlayControls}},
	{ID: OverlayControls, Name: "Overlay List", Description: "This list of toggles",
		Key: rl.KeyF1, KeyLabel: "F1", Category: CategoryPanels, Exclusive: []OverlayID{OverlayTuning}},
}

// OverlayRegistry tracks which overlays are on.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	index       map[OverlayID]int
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry holding the aquarium's overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{
		index:   make(map[OverlayID]int),
		enabled: make(map[OverlayID]bool),
	}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds desc, replacing any overlay with the same ID.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.descriptors[i] = desc
	} else {
		r.index[desc.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, desc)
	}
	r.enabled[desc.ID] = desc.Default
}

// Toggle flips id and returns its new state. Turning an overlay on turns its
// exclusive partners off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	on := !r.enabled[id]
	r.enabled[id] = on
	if on {
		for _, other := range r.descriptors[i].Exclusive {
			r.enabled[other] = false
		}
	}
	return on
}

// IsEnabled reports whether id is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns the overlays in category, in registration order.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.descriptors {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, d := range r.descriptors {
		seen := false
		for _, c := range cats {
			if c == d.Category {
				seen = true
				break
			}
		}
		if !seen {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses that key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, d := range r.descriptors {
		if d.Key != 0 && d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}
