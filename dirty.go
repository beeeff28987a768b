package tela

// maxDirtyRegions bounds how many disjoint regions are tracked before
// they collapse into one bounding rect. Past this point the per-region
// bookkeeping costs more than diffing the extra cells.
const maxDirtyRegions = 16

// DirtyRegions accumulates rectangular regions that need repainting.
// Overlapping or edge-adjacent rects are merged into their bounding
// union so the renderer walks a small set of disjoint regions.
type DirtyRegions struct {
	regions []Rect
}

// NewDirtyRegions creates an empty dirty region accumulator.
func NewDirtyRegions() *DirtyRegions {
	return &DirtyRegions{}
}

// Add marks a rectangle dirty. Empty rects are ignored. The new rect is
// merged with any region it overlaps or touches; merging repeats until
// no two regions can be combined, since a union may bridge regions that
// were previously separate.
func (d *DirtyRegions) Add(r Rect) {
	if r.IsEmpty() {
		return
	}

	for {
		merged := false
		for i, existing := range d.regions {
			if existing.Intersects(r) || existing.Touches(r) {
				r = existing.Union(r)
				d.regions = append(d.regions[:i], d.regions[i+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}
	d.regions = append(d.regions, r)

	if len(d.regions) > maxDirtyRegions {
		all := d.regions[0]
		for _, reg := range d.regions[1:] {
			all = all.Union(reg)
		}
		d.regions = append(d.regions[:0], all)
	}
}

// Regions returns the current set of merged dirty rects.
// The returned slice is owned by the accumulator; callers must not
// retain it across Clear.
func (d *DirtyRegions) Regions() []Rect {
	return d.regions
}

// IsEmpty returns true if nothing has been marked dirty.
func (d *DirtyRegions) IsEmpty() bool {
	return len(d.regions) == 0
}

// Covers returns true if the point lies within any dirty region.
func (d *DirtyRegions) Covers(x, y int) bool {
	for _, r := range d.regions {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// Clear discards all dirty regions.
func (d *DirtyRegions) Clear() {
	d.regions = d.regions[:0]
}

// MarkDirty marks this app as needing a render. The next frame runs a
// full diff since the mutation's screen extent is unknown.
func (a *App) MarkDirty() {
	if a == nil {
		panic("tela: nil app in MarkDirty")
	}
	a.dirty.Store(true)
	a.fullDirty.Store(true)
}

// markRegionDirty marks a known screen rectangle as needing a repaint.
// When a frame's dirt is entirely region-scoped the renderer restricts
// its diff scan to those rects. UI goroutine only.
func (a *App) markRegionDirty(r Rect) {
	a.regions.Add(r)
	a.dirty.Store(true)
}

// checkAndClearDirty returns true if dirty and clears the flag.
// Called by the main loop after processing events.
func (a *App) checkAndClearDirty() bool {
	if a == nil {
		panic("tela: nil app in checkAndClearDirty")
	}
	return a.dirty.Swap(false)
}
