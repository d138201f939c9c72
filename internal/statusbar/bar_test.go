package statusbar

import (
	"errors"
	"testing"
)

func TestAddEntryBeforeBindStagesPending(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)

	acc := bar.AddEntry(Content{Text: "12:00"}, "clock", AlignRight, 100)
	if acc == nil {
		t.Fatalf("expected accessor for staged entry")
	}
	if len(vm.Entries(AlignRight)) != 0 {
		t.Fatalf("expected no live entries before bind")
	}
	if bar.Bound() {
		t.Fatalf("expected bar unbound before bind")
	}
}

func TestBindPromotesPendingInRegistrationOrder(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)

	bar.AddEntry(Content{Text: "one"}, "one", AlignLeft, 10)
	bar.AddEntry(Content{Text: "two"}, "two", AlignLeft, 5)
	bar.AddEntry(Content{Text: "three"}, "three", AlignRight, 7)

	container := NewContainer()
	if err := bar.Bind(container); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	assertOrder(t, entryIDs(vm.Entries(AlignLeft)), []string{"two", "one"})
	assertOrder(t, entryIDs(vm.Entries(AlignRight)), []string{"three"})

	// Container child order mirrors the view model column order.
	left := container.Column(AlignLeft).Children()
	if len(left) != 2 || left[0].Name() != "statusbar.entry.two" || left[1].Name() != "statusbar.entry.one" {
		t.Fatalf("unexpected left column layout %v", left)
	}
}

func TestBindBreaksStagedTiesBySecondary(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)

	first := bar.AddEntry(Content{Text: "stale"}, "bravo", AlignLeft, 10)
	bar.AddEntry(Content{Text: "two"}, "alpha", AlignLeft, 10)
	first.Update(Content{Text: "fresh"})

	if err := bar.Bind(NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	// Equal primaries order by the id-derived secondary, not by the order
	// the entries were staged in.
	want := []string{"alpha", "bravo"}
	if derivePriority("bravo") < derivePriority("alpha") {
		want = []string{"bravo", "alpha"}
	}
	assertOrder(t, entryIDs(vm.Entries(AlignLeft)), want)

	for _, entry := range vm.Entries(AlignLeft) {
		if entry.ID != "bravo" {
			continue
		}
		if got := segmentTexts(entry.Label); len(got) != 1 || got[0] != "fresh" {
			t.Fatalf("expected staged update applied after the drain, got %v", got)
		}
	}
}

func TestBindTwiceReturnsError(t *testing.T) {
	bar := NewBar(NewViewModel(nil))
	if err := bar.Bind(NewContainer()); err != nil {
		t.Fatalf("first bind failed: %v", err)
	}
	if err := bar.Bind(NewContainer()); !errors.Is(err, ErrAlreadyBound) {
		t.Fatalf("expected ErrAlreadyBound, got %v", err)
	}
}

func TestPendingAccessorUpdateSurvivesPromotion(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)

	acc := bar.AddEntry(Content{Text: "stale"}, "clock", AlignRight, 100)
	acc.Update(Content{Text: "12:34", Tooltip: "Local time"})

	if err := bar.Bind(NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	entries := vm.Entries(AlignRight)
	if len(entries) != 1 {
		t.Fatalf("expected one live entry, got %d", len(entries))
	}
	if entries[0].Name != "Local time" {
		t.Fatalf("expected staged update applied at promotion, got %q", entries[0].Name)
	}

	// The original handle now forwards to the live entry.
	acc.Update(Content{Text: "12:35", Tooltip: "Local time"})
	if got := segmentTexts(entries[0].Label); len(got) != 1 || got[0] != "12:35" {
		t.Fatalf("expected forwarded update to re-render segments, got %v", got)
	}
}

func TestPendingAccessorDisposeRemovesFromQueue(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)

	acc := bar.AddEntry(Content{Text: "gone"}, "gone", AlignLeft, 1)
	bar.AddEntry(Content{Text: "kept"}, "kept", AlignLeft, 2)
	acc.Dispose()

	if err := bar.Bind(NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	assertOrder(t, entryIDs(vm.Entries(AlignLeft)), []string{"kept"})
}

func TestLiveAccessorDisposeDetachesElements(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)
	container := NewContainer()
	if err := bar.Bind(container); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	acc := bar.AddEntry(Content{Text: "cpu"}, "cpu", AlignLeft, 1)
	entries := vm.Entries(AlignLeft)
	if len(entries) != 1 {
		t.Fatalf("expected live entry after bind-time add")
	}
	wrapper := entries[0].Wrapper

	acc.Dispose()
	acc.Dispose()
	if len(vm.Entries(AlignLeft)) != 0 {
		t.Fatalf("expected entry removed")
	}
	if container.Owns(wrapper) {
		t.Fatalf("expected wrapper detached from container")
	}

	// Updates after disposal are dropped, not resurrected.
	acc.Update(Content{Text: "late"})
	if len(vm.Entries(AlignLeft)) != 0 {
		t.Fatalf("expected post-dispose update to be a no-op")
	}
}

func TestAddLivePlacesByPriority(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)
	container := NewContainer()
	if err := bar.Bind(container); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	bar.AddEntry(Content{Text: "c"}, "c", AlignLeft, 30)
	bar.AddEntry(Content{Text: "a"}, "a", AlignLeft, 10)
	bar.AddEntry(Content{Text: "b"}, "b", AlignLeft, 20)

	left := container.Column(AlignLeft).Children()
	want := []string{"statusbar.entry.a", "statusbar.entry.b", "statusbar.entry.c"}
	if len(left) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(left))
	}
	for i, child := range left {
		if child.Name() != want[i] {
			t.Fatalf("expected child %d to be %q, got %q", i, want[i], child.Name())
		}
	}
}

func TestRenderSegmentsIncludesIcon(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)
	if err := bar.Bind(NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	bar.AddEntry(Content{Icon: "⚙", Text: "build"}, "build", AlignLeft, 1)
	entry := vm.Entries(AlignLeft)[0]
	got := segmentTexts(entry.Label)
	if len(got) != 2 || got[0] != "⚙" || got[1] != "build" {
		t.Fatalf("expected icon and text segments, got %v", got)
	}
}

func TestFocusPreserveRestoresOnDrain(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)
	if err := bar.Bind(NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	bar.AddEntry(Content{Text: "a"}, "a", AlignLeft, 1)
	entry := vm.Entries(AlignLeft)[0]
	vm.FocusEntry(entry)
	bar.Focus(false)
	if vm.IsEntryFocused() {
		t.Fatalf("expected focus dropped")
	}

	bar.Focus(true)
	if vm.IsEntryFocused() {
		t.Fatalf("expected restore deferred until drain")
	}
	bar.DrainDeferred()
	if vm.FocusedEntry() != entry {
		t.Fatalf("expected focus restored to last focused entry")
	}
}

func TestFocusPreserveSkipsRemovedEntry(t *testing.T) {
	vm := NewViewModel(nil)
	bar := NewBar(vm)
	if err := bar.Bind(NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	acc := bar.AddEntry(Content{Text: "a"}, "a", AlignLeft, 1)
	entry := vm.Entries(AlignLeft)[0]
	vm.FocusEntry(entry)
	bar.Focus(false)

	bar.Focus(true)
	acc.Dispose()
	bar.DrainDeferred()
	if vm.IsEntryFocused() {
		t.Fatalf("expected deferred restore to no-op for removed entry")
	}
}

func segmentTexts(label *Element) []string {
	children := label.Children()
	texts := make([]string, len(children))
	for i, child := range children {
		texts[i] = child.Text()
	}
	return texts
}
