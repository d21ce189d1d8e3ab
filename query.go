package kaplay

import "sort"

// BoolOp combines multiple tag conditions.
type BoolOp string

const (
	OpAnd BoolOp = "and"
	OpOr  BoolOp = "or"
)

// DistanceOp orders distance-filtered results.
type DistanceOp string

const (
	OpNear DistanceOp = "near"
	OpFar  DistanceOp = "far"
)

// Hierarchy restricts a query to a relation of the reference object.
type Hierarchy string

const (
	HierarchyChildren    Hierarchy = "children"
	HierarchySiblings    Hierarchy = "siblings"
	HierarchyAncestors   Hierarchy = "ancestors"
	HierarchyDescendants Hierarchy = "descendants"
)

// QueryOpt filters the object set. Zero fields are ignored.
type QueryOpt struct {
	// Include keeps objects matching the tag set, combined per IncludeOp
	// (default and).
	Include   []string
	IncludeOp BoolOp
	// Exclude drops objects matching the tag set, combined per ExcludeOp
	// (default and, meaning an object is dropped only when it carries
	// every excluded tag).
	Exclude   []string
	ExcludeOp BoolOp
	// Distance keeps objects within this range of the reference object and
	// orders results by distance per DistanceOp (default near). Requires a
	// reference object with a position.
	Distance   float64
	DistanceOp DistanceOp
	// Hierarchy restricts candidates to a relation of the reference
	// object.
	Hierarchy Hierarchy
	// Visible drops hidden objects (and objects under a hidden ancestor)
	// when true.
	Visible bool
}

func matchTags(obj *GameObject, tags []string, op BoolOp) bool {
	if op == OpOr {
		for _, t := range tags {
			if obj.Is(t) {
				return true
			}
		}
		return false
	}
	for _, t := range tags {
		if !obj.Is(t) {
			return false
		}
	}
	return true
}

func validBoolOp(op BoolOp) bool {
	return op == "" || op == OpAnd || op == OpOr
}

func (opt QueryOpt) validate(ref *GameObject, root *GameObject) {
	if !validBoolOp(opt.IncludeOp) {
		panic(InvalidQueryError{Reason: "unknown include op " + string(opt.IncludeOp)})
	}
	if !validBoolOp(opt.ExcludeOp) {
		panic(InvalidQueryError{Reason: "unknown exclude op " + string(opt.ExcludeOp)})
	}
	switch opt.DistanceOp {
	case "", OpNear, OpFar:
	default:
		panic(InvalidQueryError{Reason: "unknown distance op " + string(opt.DistanceOp)})
	}
	switch opt.Hierarchy {
	case "", HierarchyChildren, HierarchySiblings, HierarchyAncestors, HierarchyDescendants:
	default:
		panic(InvalidQueryError{Reason: "unknown hierarchy " + string(opt.Hierarchy)})
	}
	if ref == root {
		switch opt.Hierarchy {
		case HierarchySiblings:
			panic(InvalidQueryError{Reason: "root has no siblings"})
		case HierarchyAncestors:
			panic(InvalidQueryError{Reason: "root has no ancestors"})
		}
	}
	if opt.Distance < 0 {
		panic(InvalidQueryError{Reason: "negative distance"})
	}
}

// candidates collects the hierarchy-scoped object set relative to ref.
func (opt QueryOpt) candidates(ref *GameObject) []*GameObject {
	switch opt.Hierarchy {
	case HierarchyChildren:
		return ref.Children()
	case HierarchySiblings:
		var out []*GameObject
		for _, sib := range ref.parent.Children() {
			if sib != ref {
				out = append(out, sib)
			}
		}
		return out
	case HierarchyAncestors:
		var out []*GameObject
		for p := ref.parent; p != nil && p.parent != nil; p = p.parent {
			out = append(out, p)
		}
		return out
	case HierarchyDescendants:
		var out []*GameObject
		var walk func(o *GameObject)
		walk = func(o *GameObject) {
			for _, child := range o.children {
				out = append(out, child)
				walk(child)
			}
		}
		walk(ref)
		return out
	default:
		var out []*GameObject
		var walk func(o *GameObject)
		walk = func(o *GameObject) {
			for _, child := range o.children {
				out = append(out, child)
				walk(child)
			}
		}
		walk(ref.ctx.root)
		return out
	}
}

func isVisible(o *GameObject) bool {
	for o := o; o != nil; o = o.parent {
		if o.Hidden {
			return false
		}
	}
	return true
}

// Query filters live objects relative to this object. Hierarchy and
// distance conditions use the receiver as the reference; with no hierarchy
// the whole tree is searched and the receiver itself is never returned.
func (o *GameObject) Query(opt QueryOpt) []*GameObject {
	o.ensureAlive("Query")
	opt.validate(o, o.ctx.root)

	var out []*GameObject
	for _, cand := range opt.candidates(o) {
		if cand == o || !cand.exists {
			continue
		}
		if len(opt.Include) > 0 && !matchTags(cand, opt.Include, opt.IncludeOp) {
			continue
		}
		if len(opt.Exclude) > 0 && matchTags(cand, opt.Exclude, opt.ExcludeOp) {
			continue
		}
		if opt.Visible && !isVisible(cand) {
			continue
		}
		out = append(out, cand)
	}

	if opt.Distance > 0 || opt.DistanceOp != "" {
		origin := o.WorldPos()
		if opt.Distance > 0 {
			kept := out[:0]
			maxSq := opt.Distance * opt.Distance
			for _, cand := range out {
				if cand.WorldPos().SqDist(origin) <= maxSq {
					kept = append(kept, cand)
				}
			}
			out = kept
		}
		far := opt.DistanceOp == OpFar
		sort.SliceStable(out, func(i, j int) bool {
			di := out[i].WorldPos().SqDist(origin)
			dj := out[j].WorldPos().SqDist(origin)
			if far {
				return di > dj
			}
			return di < dj
		})
	}
	return out
}

// Query runs a query over the full object tree with the root as reference.
func (c *Context) Query(opt QueryOpt) []*GameObject {
	return c.root.Query(opt)
}
