package menu

import (
	"strings"
	"testing"

	"github.com/workshell/workshell/internal/statusbar"
)

func newTestViewModel(t *testing.T) *statusbar.ViewModel {
	t.Helper()
	vm := statusbar.NewViewModel(nil)
	bar := statusbar.NewBar(vm)
	if err := bar.Bind(statusbar.NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	bar.AddEntry(statusbar.Content{Text: "~/src", Tooltip: "Working directory"}, "workdir", statusbar.AlignLeft, 50)
	bar.AddEntry(statusbar.Content{Text: "12:00", Tooltip: "Local time"}, "clock", statusbar.AlignRight, 100)
	return vm
}

func TestBuildItemsMarksVisibility(t *testing.T) {
	vm := newTestViewModel(t)
	vm.Hide("clock")

	items := BuildItems(vm, nil)
	if len(items) != 2 {
		t.Fatalf("expected one item per distinct id, got %d", len(items))
	}
	if items[0].ID != "workdir" || items[1].ID != "clock" {
		t.Fatalf("expected visual order workdir, clock; got %v", items)
	}
	if !strings.HasPrefix(items[0].Label, "[x]") {
		t.Fatalf("expected visible mark for workdir, got %q", items[0].Label)
	}
	if !strings.HasPrefix(items[1].Label, "[ ]") {
		t.Fatalf("expected hidden mark for clock, got %q", items[1].Label)
	}
}

func TestBuildItemsAddsHoveredHideAction(t *testing.T) {
	vm := newTestViewModel(t)
	hovered := vm.Entries(statusbar.AlignRight)[0]

	items := BuildItems(vm, hovered)
	last := items[len(items)-1]
	if last.ID != HideTargetPrefix+"clock" {
		t.Fatalf("expected hide action id, got %q", last.ID)
	}
	if !strings.Contains(last.Label, "Local time") {
		t.Fatalf("expected hovered entry name in label, got %q", last.Label)
	}
}

func TestBuildItemsDeduplicatesSharedIDs(t *testing.T) {
	vm := statusbar.NewViewModel(nil)
	bar := statusbar.NewBar(vm)
	if err := bar.Bind(statusbar.NewContainer()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	bar.AddEntry(statusbar.Content{Text: "one"}, "shared", statusbar.AlignLeft, 1)
	bar.AddEntry(statusbar.Content{Text: "two"}, "shared", statusbar.AlignLeft, 1)

	items := BuildItems(vm, nil)
	if len(items) != 1 {
		t.Fatalf("expected shared id collapsed to one item, got %d", len(items))
	}
}

func TestToggleActionFlipsVisibility(t *testing.T) {
	vm := newTestViewModel(t)

	info := ToggleAction(vm, Item{ID: "clock"})
	if !vm.IsHidden("clock") {
		t.Fatalf("expected toggle to hide a visible entry")
	}
	if !strings.Contains(info, "Hid") {
		t.Fatalf("expected hide confirmation, got %q", info)
	}

	info = ToggleAction(vm, Item{ID: "clock"})
	if vm.IsHidden("clock") {
		t.Fatalf("expected toggle to show a hidden entry")
	}
	if !strings.Contains(info, "Showing") {
		t.Fatalf("expected show confirmation, got %q", info)
	}
}

func TestToggleActionHideTarget(t *testing.T) {
	vm := newTestViewModel(t)

	ToggleAction(vm, Item{ID: HideTargetPrefix + "workdir"})
	if !vm.IsHidden("workdir") {
		t.Fatalf("expected targeted hide")
	}
}

func TestPrettyLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"editor.status", "editor status"},
		{"git-branch", "git branch"},
		{"CPU_load", "Cpu load"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := prettyLabel(tc.in); got != tc.want {
			t.Fatalf("prettyLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
