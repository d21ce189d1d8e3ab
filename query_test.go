package kaplay

import "testing"

func TestQueryIncludeAndOr(t *testing.T) {
	k := newTestContext()
	k.Add("a")
	k.Add("b")
	both := k.Add("a", "b")

	and := k.Query(QueryOpt{Include: []string{"a", "b"}, IncludeOp: OpAnd})
	if len(and) != 1 || and[0] != both {
		t.Errorf("and query returned %d objects, want only the {a,b} one", len(and))
	}

	or := k.Query(QueryOpt{Include: []string{"a", "b"}, IncludeOp: OpOr})
	if len(or) != 3 {
		t.Errorf("or query returned %d objects, want all 3", len(or))
	}
}

func TestQueryDefaultIncludeOpIsAnd(t *testing.T) {
	k := newTestContext()
	k.Add("a")
	both := k.Add("a", "b")

	got := k.Query(QueryOpt{Include: []string{"a", "b"}})
	if len(got) != 1 || got[0] != both {
		t.Error("zero-value include op should behave as and")
	}
}

func TestQueryExclude(t *testing.T) {
	k := newTestContext()
	keep := k.Add("enemy")
	k.Add("enemy", "dead")

	got := k.Query(QueryOpt{Include: []string{"enemy"}, Exclude: []string{"dead"}})
	if len(got) != 1 || got[0] != keep {
		t.Errorf("exclude query returned %d objects, want 1", len(got))
	}
}

func TestQueryExcludeOr(t *testing.T) {
	k := newTestContext()
	keep := k.Add("e")
	k.Add("e", "dead")
	k.Add("e", "frozen")

	got := k.Query(QueryOpt{Include: []string{"e"}, Exclude: []string{"dead", "frozen"}, ExcludeOp: OpOr})
	if len(got) != 1 || got[0] != keep {
		t.Errorf("or-exclude returned %d objects, want 1", len(got))
	}
}

// --- hierarchy ---

func TestQueryHierarchyChildren(t *testing.T) {
	k := newTestContext()
	parent := k.Add()
	child := parent.Add("x")
	grandchild := child.Add("x")
	_ = grandchild

	got := parent.Query(QueryOpt{Include: []string{"x"}, Hierarchy: HierarchyChildren})
	if len(got) != 1 || got[0] != child {
		t.Errorf("children query returned %d objects, want the direct child only", len(got))
	}
}

func TestQueryHierarchyDescendants(t *testing.T) {
	k := newTestContext()
	parent := k.Add()
	child := parent.Add("x")
	child.Add("x")
	k.Add("x") // outside the subtree

	got := parent.Query(QueryOpt{Include: []string{"x"}, Hierarchy: HierarchyDescendants})
	if len(got) != 2 {
		t.Errorf("descendants query returned %d objects, want 2", len(got))
	}
}

func TestQueryHierarchySiblings(t *testing.T) {
	k := newTestContext()
	parent := k.Add()
	me := parent.Add()
	sib := parent.Add("x")
	parent.Add().Add("x") // nephew, not a sibling

	got := me.Query(QueryOpt{Include: []string{"x"}, Hierarchy: HierarchySiblings})
	if len(got) != 1 || got[0] != sib {
		t.Errorf("siblings query returned %d objects, want 1", len(got))
	}
}

func TestQueryHierarchyAncestors(t *testing.T) {
	k := newTestContext()
	grand := k.Add("x")
	parent := grand.Add("x")
	me := parent.Add()

	got := me.Query(QueryOpt{Hierarchy: HierarchyAncestors})
	if len(got) != 2 {
		t.Fatalf("ancestors query returned %d objects, want 2 (root excluded)", len(got))
	}
	if got[0] != parent || got[1] != grand {
		t.Error("ancestors should be ordered nearest first")
	}
}

// --- distance ---

func TestQueryDistanceFilterAndOrder(t *testing.T) {
	k := newTestContext()
	ref := k.Add(Pos(0, 0))
	near := k.Add(Pos(10, 0), "t")
	mid := k.Add(Pos(20, 0), "t")
	k.Add(Pos(500, 0), "t")

	got := ref.Query(QueryOpt{Include: []string{"t"}, Distance: 100})
	if len(got) != 2 {
		t.Fatalf("distance filter kept %d objects, want 2", len(got))
	}
	if got[0] != near || got[1] != mid {
		t.Error("default distance order should be ascending (near)")
	}

	far := ref.Query(QueryOpt{Include: []string{"t"}, Distance: 100, DistanceOp: OpFar})
	if far[0] != mid || far[1] != near {
		t.Error("far order should be descending")
	}
}

func TestQueryVisible(t *testing.T) {
	k := newTestContext()
	k.Add("t").Hidden = true
	shown := k.Add("t")
	hiddenParent := k.Add()
	hiddenParent.Hidden = true
	hiddenParent.Add("t")

	got := k.Query(QueryOpt{Include: []string{"t"}, Visible: true})
	if len(got) != 1 || got[0] != shown {
		t.Errorf("visible query returned %d objects, want 1", len(got))
	}
}

func TestQueryExcludesReceiver(t *testing.T) {
	k := newTestContext()
	me := k.Add("t")
	other := k.Add("t")
	got := me.Query(QueryOpt{Include: []string{"t"}})
	if len(got) != 1 || got[0] != other {
		t.Error("query should never return the reference object itself")
	}
}

// --- validation ---

func TestQueryInvalidOpPanics(t *testing.T) {
	k := newTestContext()
	defer func() {
		if _, ok := recover().(InvalidQueryError); !ok {
			t.Fatal("unknown include op should panic with InvalidQueryError")
		}
	}()
	k.Query(QueryOpt{Include: []string{"a"}, IncludeOp: "xor"})
}

func TestQueryRootSiblingsPanics(t *testing.T) {
	k := newTestContext()
	defer func() {
		if _, ok := recover().(InvalidQueryError); !ok {
			t.Fatal("siblings of the root should panic with InvalidQueryError")
		}
	}()
	k.Query(QueryOpt{Hierarchy: HierarchySiblings})
}

func TestQueryNegativeDistancePanics(t *testing.T) {
	k := newTestContext()
	defer func() {
		if _, ok := recover().(InvalidQueryError); !ok {
			t.Fatal("negative distance should panic with InvalidQueryError")
		}
	}()
	k.Query(QueryOpt{Distance: -1})
}
