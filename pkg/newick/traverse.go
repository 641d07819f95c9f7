package newick

// PreOrder returns nodes of a subtree, parents before children.
func (t *Tree) PreOrder(id NodeID) []NodeID {
	var res []NodeID
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res = append(res, cur)
		kids := t.nodes[cur].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return res
}

// PostOrder returns nodes of a subtree, children before parents.
func (t *Tree) PostOrder(id NodeID) []NodeID {
	var res []NodeID
	var walk func(NodeID)
	walk = func(cur NodeID) {
		for _, c := range t.nodes[cur].children {
			walk(c)
		}
		res = append(res, cur)
	}
	walk(id)
	return res
}

// LevelOrder returns nodes of a subtree breadth first.
func (t *Tree) LevelOrder(id NodeID) []NodeID {
	res := []NodeID{id}
	for i := 0; i < len(res); i++ {
		res = append(res, t.nodes[res[i]].children...)
	}
	return res
}

// InOrder returns nodes of a subtree with the first child visited before
// its parent and the rest of children after it. For binary trees this is
// the classic in-order traversal.
func (t *Tree) InOrder(id NodeID) []NodeID {
	var res []NodeID
	var walk func(NodeID)
	walk = func(cur NodeID) {
		kids := t.nodes[cur].children
		if len(kids) > 0 {
			walk(kids[0])
		}
		res = append(res, cur)
		for _, c := range kids[min(1, len(kids)):] {
			walk(c)
		}
	}
	walk(id)
	return res
}
