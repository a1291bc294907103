package state

import (
	"testing"

	"pgregory.net/rapid"
)

func TestReconcileGroupsCollapsesNewFamilies(t *testing.T) {
	var g Groups
	g.Reset()
	g.Reconcile(NewSet("A", "B"))
	if !g.IsCollapsed("A") || !g.IsCollapsed("B") {
		t.Fatalf("expected new families collapsed, got %v", g.Collapsed.Sorted())
	}
	g.Toggle("A")
	g.Reconcile(NewSet("A", "B"))
	if g.IsCollapsed("A") {
		t.Fatalf("expected A to stay expanded across reconciliation")
	}
	if !g.IsCollapsed("B") {
		t.Fatalf("expected B to stay collapsed")
	}
}

func TestReconcileGroupsDropsVanishedFamilies(t *testing.T) {
	var g Groups
	g.Reset()
	g.Reconcile(NewSet("A", "B"))
	g.Toggle("A")
	g.Reconcile(NewSet("B"))
	if g.Known.Has("A") || g.Collapsed.Has("A") {
		t.Fatalf("expected A forgotten, known=%v collapsed=%v", g.Known.Sorted(), g.Collapsed.Sorted())
	}
	// A reappears: it is new again, so it starts collapsed even though the
	// user had expanded it before it vanished.
	g.Reconcile(NewSet("A", "B"))
	if !g.IsCollapsed("A") {
		t.Fatalf("expected reappearing family collapsed")
	}
}

func TestReconcileGroupsDoesNotMutateInputs(t *testing.T) {
	collapsed := NewSet("A")
	known := NewSet("A")
	current := NewSet("B")
	ReconcileGroups(collapsed, known, current)
	if !collapsed.Has("A") || !known.Has("A") || current.Has("A") {
		t.Fatalf("inputs mutated")
	}
}

func TestCollapsedSubsetOfKnownProperty(t *testing.T) {
	families := []string{"A", "B", "C", "D", "E"}
	rapid.Check(t, func(rt *rapid.T) {
		var g Groups
		g.Reset()
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "toggle") && g.Known.Len() > 0 {
				g.Toggle(rapid.SampledFrom(g.Known.Sorted()).Draw(rt, "family"))
			}
			current := NewSet(rapid.SliceOf(rapid.SampledFrom(families)).Draw(rt, "current")...)
			g.Reconcile(current)
			if !g.Collapsed.SubsetOf(g.Known) {
				rt.Fatalf("collapsed %v not subset of known %v", g.Collapsed.Sorted(), g.Known.Sorted())
			}
		}
	})
}

func TestUntouchedFamilyStaysCollapsedProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var g Groups
		g.Reset()
		g.Reconcile(NewSet("A", "B"))
		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "toggleB") {
				g.Toggle("B")
			}
			others := rapid.SliceOf(rapid.SampledFrom([]string{"B", "C", "D"})).Draw(rt, "others")
			g.Reconcile(NewSet(append(others, "A")...))
			if !g.IsCollapsed("A") {
				rt.Fatalf("A was never toggled but is expanded")
			}
		}
	})
}

func TestSessionStoreBeginEnd(t *testing.T) {
	s := NewSessionStore()
	if s.Active() {
		t.Fatalf("expected inactive store")
	}
	first := s.Begin()
	s.SetSettingsVisible(true)
	s.SetPreservedGroup("A")
	s.Groups().Reconcile(NewSet("A"))
	s.End()
	if s.Active() || s.SettingsVisible() || s.PreservedGroup() != "" || s.Groups().Known.Len() != 0 {
		t.Fatalf("expected state cleared on end")
	}
	second := s.Begin()
	if first == second {
		t.Fatalf("expected distinct session identities")
	}
}
