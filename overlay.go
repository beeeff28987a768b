package tela

import (
	"github.com/google/uuid"

	"github.com/telaui/tela/internal/debug"
)

// LayerType orders overlays on the z-axis. Higher layers paint later
// and hit-test first.
type LayerType int

const (
	// LayerBase is the normal view content.
	LayerBase LayerType = iota
	// LayerDropdown holds menus and completion popups.
	LayerDropdown
	// LayerTooltip holds transient hover hints.
	LayerTooltip
	// LayerModal holds dialogs that block interaction below them.
	LayerModal
)

// Overlay is a floating region painted above the base view.
type Overlay struct {
	// ID uniquely identifies the overlay. Assigned on Show.
	ID string
	// Layer determines stacking relative to other overlays.
	Layer LayerType
	// Bounds is the overlay's screen rectangle.
	Bounds Rect
	// Root is the overlay's element tree, laid out within Bounds.
	Root *Element
	// TrapFocus confines Tab cycling to the overlay while it is shown.
	// Implied for LayerModal.
	TrapFocus bool
	// DismissOnClickOutside dismisses the overlay when a click lands
	// outside its bounds.
	DismissOnClickOutside bool
	// DismissOnEscape dismisses the overlay on the Escape key.
	DismissOnEscape bool
	// OwnerView names the view that opened the overlay, so view
	// teardown can sweep its overlays.
	OwnerView string
}

// OverlayManager maintains the overlay stack: ordered lists per layer,
// most recently shown last. It owns z-order and hit-testing; focus
// trapping and modal routing are wired up by the app through the
// show/dismiss hooks.
type OverlayManager struct {
	layers    map[LayerType][]*Overlay
	onShow    func(*Overlay)
	onDismiss func(*Overlay)
}

// NewOverlayManager creates an empty overlay manager.
func NewOverlayManager() *OverlayManager {
	return &OverlayManager{
		layers: make(map[LayerType][]*Overlay),
	}
}

// OnShow installs a hook called after an overlay is shown.
func (o *OverlayManager) OnShow(fn func(*Overlay)) {
	o.onShow = fn
}

// OnDismiss installs a hook called after an overlay is dismissed.
func (o *OverlayManager) OnDismiss(fn func(*Overlay)) {
	o.onDismiss = fn
}

// Show adds an overlay to its layer, on top of the layer's existing
// overlays, and returns its assigned id. Modal overlays always trap
// focus.
func (o *OverlayManager) Show(ov *Overlay) string {
	if ov.ID == "" {
		ov.ID = uuid.NewString()
	}
	if ov.Layer == LayerModal {
		ov.TrapFocus = true
	}
	o.layers[ov.Layer] = append(o.layers[ov.Layer], ov)
	debug.Log("overlay: show id=%s layer=%d bounds=%+v", ov.ID, ov.Layer, ov.Bounds)

	if o.onShow != nil {
		o.onShow(ov)
	}
	return ov.ID
}

// Dismiss removes the overlay with the given id.
// Returns false if no such overlay is shown.
func (o *OverlayManager) Dismiss(id string) bool {
	for layer, list := range o.layers {
		for i, ov := range list {
			if ov.ID == id {
				o.layers[layer] = append(list[:i], list[i+1:]...)
				debug.Log("overlay: dismiss id=%s layer=%d", id, layer)
				if o.onDismiss != nil {
					o.onDismiss(ov)
				}
				return true
			}
		}
	}
	return false
}

// DismissView dismisses every overlay owned by the given view.
func (o *OverlayManager) DismissView(view string) {
	for _, ov := range o.all() {
		if ov.OwnerView == view {
			o.Dismiss(ov.ID)
		}
	}
}

// Get returns the overlay with the given id, or nil.
func (o *OverlayManager) Get(id string) *Overlay {
	for _, list := range o.layers {
		for _, ov := range list {
			if ov.ID == id {
				return ov
			}
		}
	}
	return nil
}

// Layer returns the overlays in one layer, bottom to top.
func (o *OverlayManager) Layer(layer LayerType) []*Overlay {
	return o.layers[layer]
}

// all returns every overlay in paint order: layer by layer, oldest
// first within a layer.
func (o *OverlayManager) all() []*Overlay {
	var out []*Overlay
	for _, layer := range []LayerType{LayerBase, LayerDropdown, LayerTooltip, LayerModal} {
		out = append(out, o.layers[layer]...)
	}
	return out
}

// PaintOrder returns every overlay from bottom to top.
func (o *OverlayManager) PaintOrder() []*Overlay {
	return o.all()
}

// HitTest returns the topmost overlay containing the point, or nil if
// the point hits the base view. Layers are searched top-down, and
// within a layer the most recently shown overlay wins.
func (o *OverlayManager) HitTest(x, y int) *Overlay {
	for _, layer := range []LayerType{LayerModal, LayerTooltip, LayerDropdown, LayerBase} {
		list := o.layers[layer]
		for i := len(list) - 1; i >= 0; i-- {
			if list[i].Bounds.Contains(x, y) {
				return list[i]
			}
		}
	}
	return nil
}

// ActiveModal returns the topmost modal overlay, or nil when none is
// shown.
func (o *OverlayManager) ActiveModal() *Overlay {
	modals := o.layers[LayerModal]
	if len(modals) == 0 {
		return nil
	}
	return modals[len(modals)-1]
}

// Empty returns true when no overlays are shown.
func (o *OverlayManager) Empty() bool {
	for _, list := range o.layers {
		if len(list) > 0 {
			return false
		}
	}
	return true
}
