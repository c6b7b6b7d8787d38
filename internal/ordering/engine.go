// Package ordering maintains the ordered/unordered partition of a
// task's subtasks. Live subtasks with a non-nil order form a contiguous
// rank sequence 1..N; every mutation here restores that invariant
// before returning. All operations are pure transforms over copies, so
// callers can persist the result atomically or discard it on failure.
package ordering

import (
	"sort"

	"github.com/tmuir/focusdo/internal/model"
)

// Direction selects which neighbor a swap targets.
type Direction int

const (
	Up Direction = iota
	Down
)

// MoveToOrdered assigns the subtask the next free rank at the end of
// the ordered group. Unknown ids and already-ordered subtasks are
// no-ops.
func MoveToOrdered(subs []model.Subtask, id string) []model.Subtask {
	out := clone(subs)
	i := indexOf(out, id)
	if i < 0 || out[i].Order != nil {
		return out
	}

	next := maxOrder(out) + 1
	out[i].Order = &next
	return out
}

// MoveToUnordered clears the subtask's rank and compacts the remaining
// ordered ranks to close the gap. Unknown ids and already-unordered
// subtasks are no-ops.
func MoveToUnordered(subs []model.Subtask, id string) []model.Subtask {
	out := clone(subs)
	i := indexOf(out, id)
	if i < 0 || out[i].Order == nil {
		return out
	}

	out[i].Order = nil
	compact(out)
	return out
}

// Swap exchanges the subtask's rank with its neighbor in the given
// direction. Both ranks change together; at a boundary, for unordered
// subtasks, and for unknown ids nothing changes.
func Swap(subs []model.Subtask, id string, dir Direction) []model.Subtask {
	out := clone(subs)
	i := indexOf(out, id)
	if i < 0 || out[i].Order == nil {
		return out
	}

	target := *out[i].Order - 1
	if dir == Down {
		target = *out[i].Order + 1
	}

	j := indexOfOrder(out, target)
	if j < 0 {
		return out
	}

	*out[i].Order, *out[j].Order = *out[j].Order, *out[i].Order
	return out
}

// Append adds a new subtask to the list. Unordered subtasks get a nil
// rank; ordered ones are always appended at the end of the ordered
// group (rank = max+1), never spliced in at an arbitrary rank, so
// insertion cannot leave gaps in the sequence. Any rank already set on
// sub is ignored.
func Append(subs []model.Subtask, sub model.Subtask, ordered bool) []model.Subtask {
	out := clone(subs)
	if ordered {
		next := maxOrder(out) + 1
		sub.Order = &next
	} else {
		sub.Order = nil
	}
	return append(out, sub)
}

// Delete soft-deletes the subtask and compacts the remaining ordered
// ranks, so the 1..N invariant holds across deletion as well. Unknown
// ids are no-ops.
func Delete(subs []model.Subtask, id string) []model.Subtask {
	out := clone(subs)
	i := indexOf(out, id)
	if i < 0 {
		return out
	}

	out[i].IsDeleted = true
	out[i].Order = nil
	compact(out)
	return out
}

// SortForDisplay returns live subtasks in display order: the ordered
// group ascending by rank, then the unordered group descending by
// importance factor (default applied when absent). Both sorts are
// stable so equal-importance subtasks keep a deterministic order.
func SortForDisplay(subs []model.Subtask) (ordered, unordered []model.Subtask) {
	for _, s := range subs {
		if s.IsDeleted {
			continue
		}
		if s.Order != nil {
			ordered = append(ordered, s)
		} else {
			unordered = append(unordered, s)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return *ordered[i].Order < *ordered[j].Order
	})
	sort.SliceStable(unordered, func(i, j int) bool {
		return importance(unordered[i]) > importance(unordered[j])
	})
	return ordered, unordered
}

// importance returns the subtask's importance factor with the subtask
// default applied.
func importance(s model.Subtask) int {
	if s.ImportanceFactor != nil {
		return *s.ImportanceFactor
	}
	return defaultSubtaskImportance
}

// defaultSubtaskImportance is the importance assumed for subtasks
// without an explicit importance factor. The display sort is the only
// place subtask importance is consulted.
const defaultSubtaskImportance = 5

// clone deep-copies the slice, including Order pointers, so transforms
// never alias the caller's data.
func clone(subs []model.Subtask) []model.Subtask {
	out := make([]model.Subtask, len(subs))
	for i, s := range subs {
		if s.Order != nil {
			o := *s.Order
			s.Order = &o
		}
		out[i] = s
	}
	return out
}

// indexOf finds a live subtask by id.
func indexOf(subs []model.Subtask, id string) int {
	for i, s := range subs {
		if !s.IsDeleted && s.ID == id {
			return i
		}
	}
	return -1
}

// indexOfOrder finds the live subtask holding the given rank.
func indexOfOrder(subs []model.Subtask, order int) int {
	for i, s := range subs {
		if !s.IsDeleted && s.Order != nil && *s.Order == order {
			return i
		}
	}
	return -1
}

// maxOrder returns the highest rank among live ordered subtasks, or 0.
func maxOrder(subs []model.Subtask) int {
	max := 0
	for _, s := range subs {
		if !s.IsDeleted && s.Order != nil && *s.Order > max {
			max = *s.Order
		}
	}
	return max
}

// compact renumbers live ordered subtasks 1..N, preserving their
// relative order.
func compact(subs []model.Subtask) {
	var idx []int
	for i, s := range subs {
		if !s.IsDeleted && s.Order != nil {
			idx = append(idx, i)
		}
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return *subs[idx[a]].Order < *subs[idx[b]].Order
	})

	for rank, i := range idx {
		r := rank + 1
		subs[i].Order = &r
	}
}
