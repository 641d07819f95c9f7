// Package newick keeps phylogenetic trees in memory. Nodes live in an
// arena and are addressed by NodeID handles, which stay valid for the
// lifetime of a Tree even after the node is detached from it.
package newick

import "slices"

// NodeID is a handle of a node inside one Tree.
type NodeID int

// None marks absence of a node.
const None NodeID = -1

// Node is a vertex of a tree.
type Node struct {
	// Name is empty for unnamed nodes.
	Name string
	// Comment is the raw content of square brackets, without the brackets.
	Comment string
	// Length is the length of the edge to the parent, it is meaningful
	// only if HasLength is true.
	Length    float64
	HasLength bool

	id       NodeID
	parent   NodeID
	children []NodeID
}

// ID returns the handle of the node.
func (n *Node) ID() NodeID { return n.id }

// SetLength sets the length of the edge to the parent.
func (n *Node) SetLength(l float64) {
	n.Length = l
	n.HasLength = true
}

// ClearLength removes the edge length.
func (n *Node) ClearLength() {
	n.Length = 0
	n.HasLength = false
}

// Tree is a rooted tree.
type Tree struct {
	nodes []*Node
	root  NodeID
}

// New creates a tree with an unnamed root.
func New() *Tree {
	t := &Tree{}
	t.root = t.NewNode()
	return t
}

// NewNode allocates a detached node and returns its handle.
func (t *Tree) NewNode() NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{id: id, parent: None})
	return id
}

// Root returns the root of the tree.
func (t *Tree) Root() NodeID { return t.root }

// SetRoot makes a detached node the root of the tree.
func (t *Tree) SetRoot(id NodeID) {
	n := t.Node(id)
	if n.parent != None {
		t.Detach(id)
	}
	t.root = id
}

// Node returns a node by its handle. Unknown handles cause a panic.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int {
	return len(t.PreOrder(t.root))
}

// Parent returns the parent of a node or None for the root and
// detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Children returns the ordered children of a node. The slice must not be
// modified by callers.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// SetChildren replaces the order of children. The new slice has to be a
// permutation of the current one.
func (t *Tree) SetChildren(id NodeID, children []NodeID) {
	t.nodes[id].children = children
}

// IsLeaf is true for nodes without children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return len(t.nodes[id].children) == 0
}

// IsRoot is true for the root of the tree.
func (t *Tree) IsRoot(id NodeID) bool {
	return id == t.root
}

// AddChild creates a new node as the last child of parent.
func (t *Tree) AddChild(parent NodeID) NodeID {
	id := t.NewNode()
	t.Attach(parent, id)
	return id
}

// Attach appends a detached node to the children of parent.
func (t *Tree) Attach(parent, child NodeID) {
	c := t.nodes[child]
	if c.parent != None {
		t.Detach(child)
	}
	c.parent = parent
	p := t.nodes[parent]
	p.children = append(p.children, child)
}

// InsertChild puts a detached node at position idx among the children
// of parent.
func (t *Tree) InsertChild(parent NodeID, idx int, child NodeID) {
	c := t.nodes[child]
	if c.parent != None {
		t.Detach(child)
	}
	c.parent = parent
	p := t.nodes[parent]
	p.children = slices.Insert(p.children, idx, child)
}

// Detach removes a node, together with its subtree, from its parent.
// The subtree stays in the arena and can be attached again.
func (t *Tree) Detach(id NodeID) {
	n := t.nodes[id]
	if n.parent == None {
		return
	}
	p := t.nodes[n.parent]
	if i := slices.Index(p.children, id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = None
}

// RemoveSubtree removes a node and all its descendants from the tree.
// Removing the root leaves an empty root in its place.
func (t *Tree) RemoveSubtree(id NodeID) {
	if id == t.root {
		t.root = t.NewNode()
		return
	}
	t.Detach(id)
}

// ChildIndex returns the position of a node among its siblings.
func (t *Tree) ChildIndex(id NodeID) int {
	p := t.nodes[id].parent
	if p == None {
		return -1
	}
	return slices.Index(t.nodes[p].children, id)
}

// Depth returns the number of edges between a node and the root.
func (t *Tree) Depth(id NodeID) int {
	return len(t.PathToRoot(id)) - 1
}

// PathToRoot returns the node, its parent and so on up to the root.
func (t *Tree) PathToRoot(id NodeID) []NodeID {
	var res []NodeID
	for cur := id; cur != None; cur = t.nodes[cur].parent {
		res = append(res, cur)
	}
	return res
}

// CommonAncestor returns the lowest common ancestor of the given nodes.
// It returns None for an empty input.
func (t *Tree) CommonAncestor(ids ...NodeID) NodeID {
	if len(ids) == 0 {
		return None
	}
	lca := ids[0]
	for _, id := range ids[1:] {
		lca = t.commonAncestor(lca, id)
		if lca == None {
			return None
		}
	}
	return lca
}

func (t *Tree) commonAncestor(a, b NodeID) NodeID {
	seen := make(map[NodeID]struct{})
	for _, id := range t.PathToRoot(a) {
		seen[id] = struct{}{}
	}
	for _, id := range t.PathToRoot(b) {
		if _, ok := seen[id]; ok {
			return id
		}
	}
	return None
}

// SubtreeIDs returns the node and all its descendants in pre-order.
func (t *Tree) SubtreeIDs(id NodeID) []NodeID {
	return t.PreOrder(id)
}

// Leaves returns leaves of the subtree in pre-order.
func (t *Tree) Leaves(id NodeID) []NodeID {
	var res []NodeID
	for _, v := range t.PreOrder(id) {
		if t.IsLeaf(v) {
			res = append(res, v)
		}
	}
	return res
}

// Distance returns the sum of edge lengths and the number of edges on
// the path between two nodes. Missing lengths count as zero, hasLengths
// is false if any edge of the path lacks a length.
func (t *Tree) Distance(a, b NodeID) (sum float64, hasLengths bool, edges int) {
	lca := t.commonAncestor(a, b)
	if lca == None {
		return 0, false, -1
	}
	hasLengths = true
	for _, start := range []NodeID{a, b} {
		for cur := start; cur != lca; cur = t.nodes[cur].parent {
			n := t.nodes[cur]
			if n.HasLength {
				sum += n.Length
			} else {
				hasLengths = false
			}
			edges++
		}
	}
	return sum, hasLengths, edges
}

// Splice removes a non-root node with exactly one child, the child takes
// its place. The child's edge becomes the sum of both edges when both
// are defined, otherwise the defined one.
func (t *Tree) Splice(id NodeID) {
	n := t.nodes[id]
	if n.parent == None || len(n.children) != 1 {
		return
	}
	child := t.nodes[n.children[0]]
	switch {
	case n.HasLength && child.HasLength:
		child.Length += n.Length
	case n.HasLength:
		child.SetLength(n.Length)
	}

	parent := n.parent
	idx := t.ChildIndex(id)
	t.Detach(id)
	n.children = nil
	child.parent = None
	t.InsertChild(parent, idx, child.id)
}

// Compress splices out every non-root node with a single child. A root
// with a single child is replaced by that child.
func (t *Tree) Compress() {
	for _, id := range t.PostOrder(t.root) {
		if id != t.root && len(t.nodes[id].children) == 1 {
			t.Splice(id)
		}
	}
	for len(t.nodes[t.root].children) == 1 {
		child := t.nodes[t.root].children[0]
		t.Detach(child)
		t.root = child
	}
}
