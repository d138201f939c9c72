package statusbar

import "testing"

func TestInsertBeforePositionsChild(t *testing.T) {
	root := NewElement("root")
	a := NewElement("a")
	b := NewElement("b")
	c := NewElement("c")
	root.AppendChild(a)
	root.AppendChild(c)
	root.InsertBefore(b, c)

	children := root.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	want := []string{"a", "b", "c"}
	for i, child := range children {
		if child.Name() != want[i] {
			t.Fatalf("expected child %d to be %q, got %q", i, want[i], child.Name())
		}
	}
}

func TestInsertBeforeForeignRefAppends(t *testing.T) {
	root := NewElement("root")
	other := NewElement("other")
	foreign := NewElement("foreign")
	other.AppendChild(foreign)

	a := NewElement("a")
	b := NewElement("b")
	root.AppendChild(a)
	root.InsertBefore(b, foreign)

	children := root.Children()
	if len(children) != 2 || children[1] != b {
		t.Fatalf("expected foreign ref to append, got %#v", children)
	}

	root.InsertBefore(NewElement("c"), nil)
	if got := root.Children(); len(got) != 3 || got[2].Name() != "c" {
		t.Fatalf("expected nil ref to append, got %#v", got)
	}
}

func TestInsertBeforeReparents(t *testing.T) {
	first := NewElement("first")
	second := NewElement("second")
	child := NewElement("child")
	first.AppendChild(child)
	second.InsertBefore(child, nil)

	if len(first.Children()) != 0 {
		t.Fatalf("expected child removed from old parent")
	}
	if child.Parent() != second {
		t.Fatalf("expected child reparented")
	}
}

func TestDetachIsIdempotent(t *testing.T) {
	root := NewElement("root")
	child := NewElement("child")
	root.AppendChild(child)

	child.Detach()
	if child.Parent() != nil {
		t.Fatalf("expected parent cleared after detach")
	}
	if len(root.Children()) != 0 {
		t.Fatalf("expected child removed from root")
	}
	child.Detach()
	if child.Parent() != nil {
		t.Fatalf("expected second detach to be a no-op")
	}
}

func TestContainerOwns(t *testing.T) {
	container := NewContainer()
	wrapper := NewElement("wrapper")
	label := NewElement("label")
	wrapper.AppendChild(label)
	container.Column(AlignLeft).AppendChild(wrapper)

	if !container.Owns(label) {
		t.Fatalf("expected nested element to be owned")
	}
	stray := NewElement("stray")
	if container.Owns(stray) {
		t.Fatalf("expected detached element not to be owned")
	}
	wrapper.Detach()
	if container.Owns(label) {
		t.Fatalf("expected detached subtree not to be owned")
	}
}
