package statusbar

// Alignment selects the status bar column an entry is placed in. It is fixed
// for the lifetime of the entry.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

func (a Alignment) String() string {
	if a == AlignRight {
		return "right"
	}
	return "left"
}

// Content is the registrant-supplied display payload of an entry. It carries
// no position data; replacing it never moves the entry.
type Content struct {
	Icon    string
	Text    string
	Tooltip string
}

// Name returns the accessible name for the content: the tooltip when set,
// otherwise the text.
func (c Content) Name() string {
	if c.Tooltip != "" {
		return c.Tooltip
	}
	return c.Text
}

// Accessor is the handle returned to each registrant. Update replaces the
// displayed content without re-running placement; Dispose removes the entry
// from whichever backing store currently owns it and is safe to call more
// than once.
type Accessor interface {
	Update(content Content)
	Dispose()
}

// ViewEntry is the live-state projection of a registered entry: the fields
// the view model needs to order, find and focus it. The wrapper and label
// handles point into the container's element tree; the view model never
// reads their content.
type ViewEntry struct {
	ID        string
	Alignment Alignment
	Priority  Priority
	Wrapper   *Element
	Label     *Element
	Name      string
}
