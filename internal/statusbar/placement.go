package statusbar

// placeBefore decides which existing sibling element a new entry must be
// inserted before so container order matches logical priority order. It
// re-scans the column's current entries on every insertion: priorities are
// not unique and the sibling set changes between insertions, so nothing here
// may be cached.
//
// The left column keeps ascending (primary, secondary) container order; the
// right column keeps descending order and renders in reversed flow, which
// makes the bar read ascending primary left to right as a whole. Equal keys
// fall through the scan and append after their duplicates, preserving
// insertion order.
func placeBefore(entries []*ViewEntry, alignment Alignment, priority Priority) *Element {
	for _, existing := range entries {
		if columnLess(alignment, priority, existing.Priority) {
			return existing.Wrapper
		}
	}
	return nil
}
