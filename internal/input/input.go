package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical pointer gesture, not a physical button.
type Action int

const (
	ActionNone Action = iota
	ActionRotate
	ActionPan
	ActionDolly
	ActionCount // Sentinel value for array sizing
)

func (a Action) String() string {
	switch a {
	case ActionRotate:
		return "rotate"
	case ActionPan:
		return "pan"
	case ActionDolly:
		return "dolly"
	}
	return "none"
}

// Target receives pointer gestures, in window pixels.
type Target interface {
	Rotate(dx, dy float64, height int)
	Pan(dx, dy float64, height int)
	Dolly(steps float64)
}

// Pointer maps mouse buttons to gestures and turns cursor motion into deltas
// for the gesture currently held. Only the first pressed button counts until
// it is released.
type Pointer struct {
	mu sync.Mutex

	buttonToAction map[glfw.MouseButton]Action

	active     Action
	activeBtn  glfw.MouseButton
	lastX      float64
	lastY      float64
	haveCursor bool
	enabled    bool
}

// NewPointer creates a pointer with the orbit bindings: left rotates, right
// pans, middle dollies.
func NewPointer() *Pointer {
	p := &Pointer{
		buttonToAction: make(map[glfw.MouseButton]Action),
		enabled:        true,
	}
	p.Bind(glfw.MouseButtonLeft, ActionRotate)
	p.Bind(glfw.MouseButtonRight, ActionPan)
	p.Bind(glfw.MouseButtonMiddle, ActionDolly)
	return p
}

// Bind maps a mouse button to an action, replacing any earlier binding.
func (p *Pointer) Bind(button glfw.MouseButton, action Action) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if action <= ActionNone || action >= ActionCount {
		delete(p.buttonToAction, button)
		return
	}
	p.buttonToAction[button] = action
}

// SetEnabled turns gesture handling on or off. Disabling drops any gesture
// in progress.
func (p *Pointer) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
	if !enabled {
		p.active = ActionNone
	}
}

// Active returns the gesture in progress.
func (p *Pointer) Active() Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// HandleMouseButtonEvent starts or ends a gesture.
func (p *Pointer) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch action {
	case glfw.Press:
		if !p.enabled || p.active != ActionNone {
			return
		}
		if act, ok := p.buttonToAction[button]; ok {
			p.active = act
			p.activeBtn = button
		}
	case glfw.Release:
		if p.active != ActionNone && button == p.activeBtn {
			p.active = ActionNone
		}
	}
}

// HandleCursorPos forwards the motion since the previous cursor event to t
// according to the gesture in progress. height is the viewport height.
func (p *Pointer) HandleCursorPos(x, y float64, height int, t Target) {
	p.mu.Lock()
	dx, dy := x-p.lastX, y-p.lastY
	first := !p.haveCursor
	p.lastX, p.lastY, p.haveCursor = x, y, true
	active := p.active
	p.mu.Unlock()

	if first || t == nil {
		return
	}
	switch active {
	case ActionRotate:
		t.Rotate(dx, dy, height)
	case ActionPan:
		t.Pan(dx, dy, height)
	case ActionDolly:
		// Dragging down zooms out, like scrolling down.
		if dy != 0 {
			t.Dolly(-dy / 10)
		}
	}
}

// HandleScroll forwards wheel motion as dolly steps.
func (p *Pointer) HandleScroll(yoff float64, t Target) {
	p.mu.Lock()
	enabled := p.enabled
	p.mu.Unlock()

	if !enabled || t == nil || yoff == 0 {
		return
	}
	t.Dolly(yoff)
}
