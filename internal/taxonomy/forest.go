package taxonomy

// TreeNode is a tag placed in the hierarchy.
type TreeNode struct {
	Tag
	Children []*TreeNode
	Depth    int
	IsRoot   bool
}

// Forest is the ordered set of roots built from a flat tag list.
type Forest struct {
	Roots []*TreeNode
	nodes []*TreeNode
	index map[string]int
}

// Len returns the number of nodes in the forest.
func (f Forest) Len() int {
	return len(f.nodes)
}

// Node looks up a node by codename.
func (f Forest) Node(codename string) (*TreeNode, bool) {
	i, ok := f.index[codename]
	if !ok {
		return nil, false
	}
	return f.nodes[i], true
}

// BuildForest arranges tags into a forest in a single pass over the input.
//
// Each tag hangs under the first of its parent codenames that names another tag
// in the same collection. Tags with no resolvable parent become roots in
// encounter order. A candidate parent that is already a descendant of the tag
// is skipped, so self references and parent cycles never produce a node that
// is unreachable from a root.
func BuildForest(tags []Tag) Forest {
	f := Forest{
		nodes: make([]*TreeNode, len(tags)),
		index: make(map[string]int, len(tags)),
	}
	for i, tag := range tags {
		f.nodes[i] = &TreeNode{Tag: tag, IsRoot: true}
		if _, dup := f.index[tag.Codename]; !dup {
			f.index[tag.Codename] = i
		}
	}

	parent := make([]int, len(tags))
	for i := range parent {
		parent[i] = -1
	}

	for i, node := range f.nodes {
		p := resolveParent(f.index, parent, i, node.ParentCodenames)
		if p < 0 {
			f.Roots = append(f.Roots, node)
			continue
		}
		parent[i] = p
		node.IsRoot = false
		f.nodes[p].Children = append(f.nodes[p].Children, node)
	}

	// Children may be attached before their parent is, so depths are settled
	// once the shape is final.
	for _, root := range f.Roots {
		setDepth(root, 0)
	}
	return f
}

func resolveParent(index map[string]int, parent []int, child int, candidates []string) int {
	for _, codename := range candidates {
		p, ok := index[codename]
		if !ok {
			continue
		}
		if descendsFrom(parent, p, child) {
			continue
		}
		return p
	}
	return -1
}

// descendsFrom reports whether node is child itself or sits below it.
func descendsFrom(parent []int, node, child int) bool {
	for n := node; n >= 0; n = parent[n] {
		if n == child {
			return true
		}
	}
	return false
}

func setDepth(node *TreeNode, depth int) {
	node.Depth = depth
	for _, child := range node.Children {
		setDepth(child, depth+1)
	}
}

// Flatten walks the forest in pre-order: each node, then its children.
func Flatten(f Forest) []*TreeNode {
	out := make([]*TreeNode, 0, len(f.nodes))
	for _, root := range f.Roots {
		out = appendPreOrder(out, root)
	}
	return out
}

func appendPreOrder(out []*TreeNode, node *TreeNode) []*TreeNode {
	out = append(out, node)
	for _, child := range node.Children {
		out = appendPreOrder(out, child)
	}
	return out
}

// Tags strips tree decoration from nodes.
func Tags(nodes []*TreeNode) []Tag {
	out := make([]Tag, len(nodes))
	for i, node := range nodes {
		out[i] = node.Tag
	}
	return out
}

// Subtree returns the tag named by codename followed by all of its
// descendants in pre-order. An unknown codename yields an empty result.
func Subtree(f Forest, codename string) []Tag {
	node, ok := f.Node(codename)
	if !ok {
		return []Tag{}
	}
	return Tags(appendPreOrder(nil, node))
}
