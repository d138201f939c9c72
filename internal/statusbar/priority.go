package statusbar

import "hash/fnv"

// Priority is the two-level ordering key attached to every status bar entry.
// Primary is caller-supplied and defines the coarse position; Secondary is
// derived from the entry id and breaks ties between entries that share a
// primary priority, so relative order stays deterministic regardless of
// registration order.
type Priority struct {
	Primary   int
	Secondary uint64
}

// MakePriority builds the ordering key for an entry. The secondary component
// is a pure function of the id: the same id always yields the same key within
// a process run.
func MakePriority(primary int, id string) Priority {
	return Priority{Primary: primary, Secondary: derivePriority(id)}
}

func derivePriority(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// Compare orders keys ascending by primary, then ascending by secondary.
// It returns -1, 0 or +1.
func (p Priority) Compare(other Priority) int {
	if p.Primary != other.Primary {
		if p.Primary < other.Primary {
			return -1
		}
		return 1
	}
	if p.Secondary != other.Secondary {
		if p.Secondary < other.Secondary {
			return -1
		}
		return 1
	}
	return 0
}
