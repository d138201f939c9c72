package statusbar

// Element is an opaque node in the status bar's visual tree. The view model
// never inspects element content; it only manipulates tree structure and the
// focus flag. Entry labels are small subtrees (wrapper > label > segments) so
// reverse lookups have real ancestors to walk.
type Element struct {
	name     string
	parent   *Element
	children []*Element
	text     string
	focused  bool
}

// NewElement creates a detached element. The name is a debugging aid and
// carries no ordering or identity semantics.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// Name returns the element's debugging name.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Parent returns the element's parent, or nil for detached elements and
// column roots.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Children returns a copy of the child list. Callers may mutate the tree
// while iterating the returned slice.
func (e *Element) Children() []*Element {
	if e == nil || len(e.children) == 0 {
		return nil
	}
	dup := make([]*Element, len(e.children))
	copy(dup, e.children)
	return dup
}

// SetText assigns the display text for a leaf segment.
func (e *Element) SetText(text string) {
	e.text = text
}

// Text returns the display text of a leaf segment.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text
}

// Focused reports whether the element currently holds input focus.
func (e *Element) Focused() bool {
	return e != nil && e.focused
}

// AppendChild attaches child as the last child of e. A child already attached
// elsewhere is detached first.
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		return
	}
	child.Detach()
	child.parent = e
	e.children = append(e.children, child)
}

// InsertBefore attaches child immediately before ref. A nil or foreign ref
// appends at the end, mirroring the container collaborator's insert
// primitive.
func (e *Element) InsertBefore(child, ref *Element) {
	if child == nil {
		return
	}
	child.Detach()
	idx := -1
	if ref != nil {
		for i, existing := range e.children {
			if existing == ref {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		child.parent = e
		e.children = append(e.children, child)
		return
	}
	child.parent = e
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = child
}

// Detach removes the element from its parent. Detaching an already detached
// element is a no-op.
func (e *Element) Detach() {
	if e == nil || e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, sibling := range siblings {
		if sibling == e {
			e.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Attached reports whether the element is still reachable from root through
// parent links.
func (e *Element) Attached(root *Element) bool {
	for node := e; node != nil; node = node.parent {
		if node == root {
			return true
		}
	}
	return false
}

// Container is the visual surface the status bar renders into. It holds one
// column root per alignment; entry elements live under exactly one of them.
type Container struct {
	left  *Element
	right *Element
}

// NewContainer creates an empty container with both column roots.
func NewContainer() *Container {
	return &Container{
		left:  NewElement("statusbar.left"),
		right: NewElement("statusbar.right"),
	}
}

// Column returns the root element for the given alignment.
func (c *Container) Column(alignment Alignment) *Element {
	if alignment == AlignRight {
		return c.right
	}
	return c.left
}

// Owns reports whether the element belongs to either column of this
// container.
func (c *Container) Owns(e *Element) bool {
	if c == nil || e == nil {
		return false
	}
	return e.Attached(c.left) || e.Attached(c.right)
}
