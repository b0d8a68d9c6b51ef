package parser

// Visitor traverses a documentation tree. VisitPre is called before a
// node's children; returning false skips them and the matching VisitPost.
type Visitor interface {
	VisitPre(n *Node) bool
	VisitPost(n *Node)
}

// Walk traverses the tree rooted at n in reading order. Titles, captions
// and parameter names are visited before the node's body.
func Walk(v Visitor, n *Node) {
	if n == nil || !v.VisitPre(n) {
		return
	}
	for _, c := range n.prefix() {
		Walk(v, c)
	}
	for _, c := range n.Children {
		Walk(v, c)
	}
	v.VisitPost(n)
}

// VisitorFuncs is a Visitor built from per-kind functions. Kinds without
// a Pre function are descended into; Default, when set, handles them.
type VisitorFuncs struct {
	Pre     map[Kind]func(*Node) bool
	Post    map[Kind]func(*Node)
	Default func(*Node) bool
}

func (f VisitorFuncs) VisitPre(n *Node) bool {
	if fn, ok := f.Pre[n.Kind]; ok {
		return fn(n)
	}
	if f.Default != nil {
		return f.Default(n)
	}
	return true
}

func (f VisitorFuncs) VisitPost(n *Node) {
	if fn, ok := f.Post[n.Kind]; ok {
		fn(n)
	}
}

// Inspect calls fn for every node below and including n, depth first.
// Returning false from fn prunes the subtree.
func Inspect(n *Node, fn func(*Node) bool) {
	Walk(VisitorFuncs{Default: fn}, n)
}
