package newick

import "strings"

// Comments hold items separated by ',' or ':'. An item is either a free
// string or a key=value pair. Changed comments are written back with ':'
// as the separator.

func splitComment(c string) []string {
	return strings.FieldsFunc(c, func(r rune) bool {
		return r == ',' || r == ':'
	})
}

// CommentAdd appends a free-form item to the comment of a node.
func (t *Tree) CommentAdd(id NodeID, item string) {
	if item == "" {
		return
	}
	n := t.nodes[id]
	if n.Comment == "" {
		n.Comment = item
		return
	}
	n.Comment += ":" + item
}

// CommentSetKV sets the value of a key, replacing an existing pair or
// appending a new one.
func (t *Tree) CommentSetKV(id NodeID, key, val string) {
	n := t.nodes[id]
	items := splitComment(n.Comment)
	pair := key + "=" + val
	for i, v := range items {
		if k, _, ok := strings.Cut(v, "="); ok && k == key {
			items[i] = pair
			n.Comment = strings.Join(items, ":")
			return
		}
	}
	t.CommentAdd(id, pair)
}

// CommentGetKV returns the value of a key from the comment of a node.
func (t *Tree) CommentGetKV(id NodeID, key string) (string, bool) {
	for _, v := range splitComment(t.nodes[id].Comment) {
		if k, val, ok := strings.Cut(v, "="); ok && k == key {
			return val, true
		}
	}
	return "", false
}

// CommentDeleteKV removes all pairs with the given key.
func (t *Tree) CommentDeleteKV(id NodeID, key string) {
	n := t.nodes[id]
	items := splitComment(n.Comment)
	res := items[:0]
	for _, v := range items {
		if k, _, ok := strings.Cut(v, "="); ok && k == key {
			continue
		}
		res = append(res, v)
	}
	if len(res) == len(items) {
		return
	}
	n.Comment = strings.Join(res, ":")
}
