package coverage

import (
	"fmt"
	"io"
)

type nodeids struct {
	idTable map[*Node]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[*Node]int),
		max:     1,
	}
}

func (ids nodeids) find(node *Node) int {
	return ids.idTable[node]
}

func (ids *nodeids) alloc(node *Node) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// TreeDot outputs the internal structure of a nesting-depth tree in
// Graphviz DOT format (for debugging purposes).
func TreeDot(root *Node, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable()
	nodelist, edgelist := "", ""
	var emit func(n *Node)
	emit = func(n *Node) {
		ID := ids.alloc(n)
		label := fmt.Sprintf("@%d\\n%+d ×%d\\nΣ%d ∇%d", n.offset, n.adjust, n.refCount, n.subTotal, n.subMin)
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(n))
		if n.left == nil {
			nilid := ID + 10000
			nodelist += fmt.Sprintf("\"%d\" %s;\n", nilid, emptyNode(nilid))
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ID, nilid)
		} else {
			emit(n.left)
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ID, ids.find(n.left))
		}
		if n.right == nil {
			nilid := ID + 20000
			nodelist += fmt.Sprintf("\"%d\" %s;\n", nilid, emptyNode(nilid))
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ID, nilid)
		} else {
			emit(n.right)
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ID, ids.find(n.right))
		}
	}
	if root != nil {
		emit(root)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func emptyNode(id int) string {
	s := "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
	return s
}

func nodeDotStyles(n *Node) string {
	s := ",style=filled,shape=box"
	if n.refCount > 0 {
		s += ",color=black,fillcolor=\"#a3d7e4\""
	}
	return s
}
