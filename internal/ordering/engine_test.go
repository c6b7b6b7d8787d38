package ordering

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/tmuir/focusdo/internal/model"
)

func intPtr(n int) *int { return &n }

// newList builds a subtask list with the given ranks; 0 means unordered.
func newList(ranks ...int) []model.Subtask {
	subs := make([]model.Subtask, len(ranks))
	for i, r := range ranks {
		subs[i] = model.Subtask{ID: fmt.Sprintf("s%d", i+1), TaskID: "t1"}
		if r > 0 {
			subs[i].Order = intPtr(r)
		}
	}
	return subs
}

// checkContiguous fails unless the live ordered ranks are exactly 1..N.
func checkContiguous(t *testing.T, subs []model.Subtask) {
	t.Helper()

	var ranks []int
	for _, s := range subs {
		if !s.IsDeleted && s.Order != nil {
			ranks = append(ranks, *s.Order)
		}
	}
	sort.Ints(ranks)
	for i, r := range ranks {
		if r != i+1 {
			t.Fatalf("ordered ranks %v are not contiguous 1..%d", ranks, len(ranks))
		}
	}
}

func rankOf(t *testing.T, subs []model.Subtask, id string) *int {
	t.Helper()
	for _, s := range subs {
		if s.ID == id {
			return s.Order
		}
	}
	t.Fatalf("subtask %s not found", id)
	return nil
}

func TestMoveToOrderedAppendsAtEnd(t *testing.T) {
	subs := newList(1, 2, 0)

	got := MoveToOrdered(subs, "s3")
	if r := rankOf(t, got, "s3"); r == nil || *r != 3 {
		t.Fatalf("moved subtask rank = %v, want 3", r)
	}
	checkContiguous(t, got)

	// First ordered subtask in an empty ordered group gets rank 1.
	empty := newList(0, 0)
	got = MoveToOrdered(empty, "s2")
	if r := rankOf(t, got, "s2"); r == nil || *r != 1 {
		t.Fatalf("first ordered rank = %v, want 1", r)
	}
}

func TestMoveToOrderedNoops(t *testing.T) {
	subs := newList(1, 2)

	if got := MoveToOrdered(subs, "missing"); rankOf(t, got, "s1") == nil || *rankOf(t, got, "s1") != 1 {
		t.Fatalf("unknown id must not disturb existing ranks")
	}
	got := MoveToOrdered(subs, "s1")
	if r := rankOf(t, got, "s1"); r == nil || *r != 1 {
		t.Fatalf("already-ordered subtask rank = %v, want unchanged 1", r)
	}
}

func TestMoveToUnorderedCompacts(t *testing.T) {
	// [1,2,3]; unordering the middle one renumbers the rest to [1,2].
	subs := newList(1, 2, 3)

	got := MoveToUnordered(subs, "s2")
	if r := rankOf(t, got, "s2"); r != nil {
		t.Fatalf("unordered subtask rank = %d, want nil", *r)
	}
	if r := rankOf(t, got, "s1"); *r != 1 {
		t.Fatalf("s1 rank = %d, want 1", *r)
	}
	if r := rankOf(t, got, "s3"); *r != 2 {
		t.Fatalf("s3 rank = %d, want 2 after compaction", *r)
	}
	checkContiguous(t, got)
}

func TestMoveToUnorderedDoesNotMutateInput(t *testing.T) {
	subs := newList(1, 2, 3)
	_ = MoveToUnordered(subs, "s1")

	if *subs[0].Order != 1 || *subs[1].Order != 2 || *subs[2].Order != 3 {
		t.Fatalf("input slice was mutated: %v %v %v",
			*subs[0].Order, *subs[1].Order, *subs[2].Order)
	}
}

func TestSwapExchangesNeighborRanks(t *testing.T) {
	subs := newList(1, 2, 3)

	got := Swap(subs, "s2", Up)
	if *rankOf(t, got, "s2") != 1 || *rankOf(t, got, "s1") != 2 {
		t.Fatalf("swap up: s2=%d s1=%d, want 1 and 2",
			*rankOf(t, got, "s2"), *rankOf(t, got, "s1"))
	}
	checkContiguous(t, got)

	got = Swap(subs, "s2", Down)
	if *rankOf(t, got, "s2") != 3 || *rankOf(t, got, "s3") != 2 {
		t.Fatalf("swap down: s2=%d s3=%d, want 3 and 2",
			*rankOf(t, got, "s2"), *rankOf(t, got, "s3"))
	}
	checkContiguous(t, got)
}

func TestSwapBoundariesAndUnorderedAreNoops(t *testing.T) {
	subs := newList(1, 2, 0)

	cases := []struct {
		name string
		id   string
		dir  Direction
	}{
		{"top up", "s1", Up},
		{"bottom down", "s2", Down},
		{"unordered", "s3", Up},
		{"unknown", "nope", Down},
	}

	for _, tc := range cases {
		got := Swap(subs, tc.id, tc.dir)
		if *rankOf(t, got, "s1") != 1 || *rankOf(t, got, "s2") != 2 {
			t.Fatalf("%s: ranks changed, s1=%d s2=%d",
				tc.name, *rankOf(t, got, "s1"), *rankOf(t, got, "s2"))
		}
		if rankOf(t, got, "s3") != nil {
			t.Fatalf("%s: unordered subtask gained a rank", tc.name)
		}
	}
}

func TestSwapSymmetry(t *testing.T) {
	subs := newList(1, 2, 3, 4)

	got := Swap(Swap(subs, "s3", Up), "s3", Down)
	for i, want := range []int{1, 2, 3, 4} {
		id := fmt.Sprintf("s%d", i+1)
		if r := rankOf(t, got, id); *r != want {
			t.Fatalf("after up+down, %s rank = %d, want %d", id, *r, want)
		}
	}
}

func TestAppend(t *testing.T) {
	subs := newList(1, 2)

	got := Append(subs, model.Subtask{ID: "new1", TaskID: "t1"}, true)
	if r := rankOf(t, got, "new1"); r == nil || *r != 3 {
		t.Fatalf("appended ordered rank = %v, want 3", r)
	}
	checkContiguous(t, got)

	got = Append(got, model.Subtask{ID: "new2", TaskID: "t1"}, false)
	if r := rankOf(t, got, "new2"); r != nil {
		t.Fatalf("appended unordered rank = %d, want nil", *r)
	}

	// A pre-set rank on the new subtask is ignored, not spliced in.
	got = Append(got, model.Subtask{ID: "new3", TaskID: "t1", Order: intPtr(1)}, true)
	if r := rankOf(t, got, "new3"); r == nil || *r != 4 {
		t.Fatalf("appended rank = %v, want 4 (end of group)", r)
	}
	checkContiguous(t, got)
}

func TestDeleteSoftDeletesAndCompacts(t *testing.T) {
	subs := newList(1, 2, 3)

	got := Delete(subs, "s1")
	var deleted model.Subtask
	for _, s := range got {
		if s.ID == "s1" {
			deleted = s
		}
	}
	if !deleted.IsDeleted {
		t.Fatalf("deleted subtask not marked")
	}
	if *rankOf(t, got, "s2") != 1 || *rankOf(t, got, "s3") != 2 {
		t.Fatalf("ranks after delete: s2=%d s3=%d, want 1 and 2",
			*rankOf(t, got, "s2"), *rankOf(t, got, "s3"))
	}
	checkContiguous(t, got)

	// Deleting an unknown id changes nothing.
	got = Delete(subs, "nope")
	checkContiguous(t, got)
	if *rankOf(t, got, "s3") != 3 {
		t.Fatalf("unknown delete disturbed ranks")
	}
}

func TestSortForDisplay(t *testing.T) {
	subs := []model.Subtask{
		{ID: "o2", Order: intPtr(2)},
		{ID: "u-low", ImportanceFactor: intPtr(2)},
		{ID: "o1", Order: intPtr(1)},
		{ID: "u-high", ImportanceFactor: intPtr(9)},
		{ID: "u-default"}, // importance defaults to 5
		{ID: "gone", Order: intPtr(3), IsDeleted: true},
	}

	ordered, unordered := SortForDisplay(subs)

	if len(ordered) != 2 || ordered[0].ID != "o1" || ordered[1].ID != "o2" {
		t.Fatalf("ordered group = %v, want [o1 o2]", ids(ordered))
	}
	want := []string{"u-high", "u-default", "u-low"}
	if len(unordered) != 3 {
		t.Fatalf("unordered group = %v, want %v", ids(unordered), want)
	}
	for i, id := range want {
		if unordered[i].ID != id {
			t.Fatalf("unordered group = %v, want %v", ids(unordered), want)
		}
	}
}

func ids(subs []model.Subtask) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

// TestContiguityUnderRandomOperations drives the engine through a long
// random sequence of mutations and checks the 1..N invariant after
// every step.
func TestContiguityUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	subs := newList(1, 2, 0, 3, 0)

	nextID := len(subs) + 1
	for step := 0; step < 500; step++ {
		pick := func() string {
			if len(subs) == 0 {
				return "none"
			}
			return subs[rng.Intn(len(subs))].ID
		}

		switch rng.Intn(6) {
		case 0:
			subs = MoveToOrdered(subs, pick())
		case 1:
			subs = MoveToUnordered(subs, pick())
		case 2:
			subs = Swap(subs, pick(), Up)
		case 3:
			subs = Swap(subs, pick(), Down)
		case 4:
			id := fmt.Sprintf("s%d", nextID)
			nextID++
			subs = Append(subs, model.Subtask{ID: id, TaskID: "t1"}, rng.Intn(2) == 0)
		case 5:
			subs = Delete(subs, pick())
		}

		checkContiguous(t, subs)

		// No duplicate ranks among live subtasks.
		seen := map[int]string{}
		for _, s := range subs {
			if s.IsDeleted || s.Order == nil {
				continue
			}
			if other, dup := seen[*s.Order]; dup {
				t.Fatalf("step %d: duplicate rank %d on %s and %s",
					step, *s.Order, other, s.ID)
			}
			seen[*s.Order] = s.ID
		}
	}
}
