package pathview

import "github.com/ayn2op/pathview/curve"

// AttributeHandle identifies a path attribute by slot. Handles are valid for
// the path they were resolved against.
type AttributeHandle int

// attributeSchema interns the attribute names of one path into slots.
type attributeSchema struct {
	names []string
	slots map[string]AttributeHandle
}

func newAttributeSchema(path curve.Curve) *attributeSchema {
	s := &attributeSchema{slots: make(map[string]AttributeHandle)}
	if path == nil {
		return s
	}
	for _, name := range path.Attributes() {
		if _, ok := s.slots[name]; ok {
			continue
		}
		s.slots[name] = AttributeHandle(len(s.names))
		s.names = append(s.names, name)
	}
	return s
}

// Attached is the state a PathView keeps for each item it lays out. Items
// that implement AttachedReceiver are handed theirs when first acquired.
type Attached struct {
	view          *PathView
	schema        *attributeSchema
	values        []float64
	percent       float64
	z             int
	onPath        bool
	isCurrentItem bool
}

// AttachedReceiver is implemented by items that want to follow their own
// placement, for example to style themselves as the current item.
type AttachedReceiver interface {
	SetAttached(a *Attached)
}

// View returns the view laying out the item.
func (a *Attached) View() *PathView {
	return a.view
}

// IsCurrentItem reports whether the item is the view's current item.
func (a *Attached) IsCurrentItem() bool {
	return a.isCurrentItem
}

// OnPath reports whether the item is placed on the visible part of the path.
func (a *Attached) OnPath() bool {
	return a.onPath
}

// Percent returns the path parameter the item was last placed at, or -1
// before it has been placed.
func (a *Attached) Percent() float64 {
	return a.percent
}

// Z returns the stacking order of the item.
func (a *Attached) Z() int {
	return a.z
}

// Value returns the path attribute name at the item's position, or 0 when
// the path has no such attribute.
func (a *Attached) Value(name string) float64 {
	h, ok := a.Handle(name)
	if !ok {
		return 0
	}
	return a.ValueAt(h)
}

// Handle resolves an attribute name to a slot.
func (a *Attached) Handle(name string) (AttributeHandle, bool) {
	if a.schema == nil {
		return -1, false
	}
	h, ok := a.schema.slots[name]
	return h, ok
}

// ValueAt returns the attribute in slot h.
func (a *Attached) ValueAt(h AttributeHandle) float64 {
	if h < 0 || int(h) >= len(a.values) {
		return 0
	}
	return a.values[h]
}

// SetValue overrides an attribute until the item is next placed.
func (a *Attached) SetValue(name string, value float64) {
	if h, ok := a.Handle(name); ok && int(h) < len(a.values) {
		a.values[h] = value
		a.view.MarkDirty()
	}
}

func (a *Attached) setOnPath(onPath bool) {
	if a.onPath != onPath {
		a.onPath = onPath
		a.view.MarkDirty()
	}
}

func (a *Attached) setIsCurrentItem(current bool) {
	if a.isCurrentItem != current {
		a.isCurrentItem = current
		a.view.MarkDirty()
	}
}

// sample reads every attribute of the path at percent.
func (a *Attached) sample(path curve.Curve, percent float64) {
	if a.schema == nil {
		return
	}
	if len(a.values) != len(a.schema.names) {
		a.values = make([]float64, len(a.schema.names))
	}
	for i, name := range a.schema.names {
		a.values[i] = path.AttributeAt(name, percent)
	}
}

func (p *PathView) attributeSchema() *attributeSchema {
	if p.schema == nil {
		p.schema = newAttributeSchema(p.path)
	}
	return p.schema
}

// attach returns the state of item, creating it on first use.
func (p *PathView) attach(item Primitive) *Attached {
	if a, ok := p.attached[item]; ok {
		if a.schema != p.attributeSchema() {
			a.schema = p.schema
			a.values = nil
		}
		return a
	}

	a := &Attached{view: p, schema: p.attributeSchema(), percent: -1}
	p.attached[item] = a
	bindDirtyParent(item, p.Box)
	if r, ok := item.(AttachedReceiver); ok {
		r.SetAttached(a)
	}
	return a
}

// detach drops the state of an item the view no longer holds.
func (p *PathView) detach(item Primitive) {
	a, ok := p.attached[item]
	if !ok {
		return
	}
	a.setOnPath(false)
	a.setIsCurrentItem(false)
	delete(p.attached, item)
	unbindDirtyParent(item, p.Box)
}

// AttachedOf returns the state the view keeps for item, or nil.
func (p *PathView) AttachedOf(item Primitive) *Attached {
	return p.attached[item]
}
