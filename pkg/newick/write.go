package newick

import (
	"strconv"
	"strings"
)

// FormatLength writes an edge length in the shortest form that reads
// back to the same float64.
func FormatLength(l float64) string {
	return strconv.FormatFloat(l, 'f', -1, 64)
}

// Label returns the serialized name, edge length and comment of a node.
func (t *Tree) Label(id NodeID) string {
	n := t.nodes[id]
	var sb strings.Builder
	sb.WriteString(quoteName(n.Name))
	if n.HasLength {
		sb.WriteByte(':')
		sb.WriteString(FormatLength(n.Length))
	}
	if n.Comment != "" {
		sb.WriteByte('[')
		sb.WriteString(n.Comment)
		sb.WriteByte(']')
	}
	return sb.String()
}

func quoteName(name string) string {
	if name == "" {
		return name
	}
	if !strings.ContainsAny(name, delimiters+"'") &&
		strings.TrimSpace(name) == name {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// Write serializes the whole tree. An empty indent gives the one-line
// form, otherwise every node goes to its own line indented by depth.
func (t *Tree) Write(indent string) string {
	return t.WriteSubtree(t.root, indent)
}

// WriteSubtree serializes the subtree of a node as a complete tree.
func (t *Tree) WriteSubtree(id NodeID, indent string) string {
	var sb strings.Builder
	t.write(&sb, id, indent, 0)
	sb.WriteByte(';')
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, id NodeID, indent string, depth int) {
	kids := t.nodes[id].children
	pad := strings.Repeat(indent, depth)
	if indent != "" {
		sb.WriteString(pad)
	}

	if len(kids) > 0 {
		sb.WriteByte('(')
		if indent != "" {
			sb.WriteByte('\n')
		}
		for i, c := range kids {
			if i > 0 {
				sb.WriteByte(',')
				if indent != "" {
					sb.WriteByte('\n')
				}
			}
			t.write(sb, c, indent, depth+1)
		}
		if indent != "" {
			sb.WriteByte('\n')
			sb.WriteString(pad)
		}
		sb.WriteByte(')')
	}
	sb.WriteString(t.Label(id))
}
