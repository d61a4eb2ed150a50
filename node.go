package suffixtree

import (
	"github.com/cockroachdb/errors"
)

// newInternal appends an internal node to the arena. Only the root may be
// created without a sequence.
func (t *tree[T]) newInternal(seq SeqID, start, end int, parent nodeID) (nodeID, error) {
	if len(t.nodes) >= maxNodes {
		return nilNode, errors.Wrapf(ErrTooLarge, "%d nodes", len(t.nodes))
	}
	if parent != nilNode && !t.validSeq(seq) {
		return nilNode, errors.Wrapf(ErrInvalidArgument, "non-root node needs a base sequence, got %d", seq)
	}
	t.nodes = append(t.nodes, node[T]{
		kind:   Internal,
		seq:    seq,
		start:  start,
		end:    end,
		parent: parent,
		link:   nilNode,
	})
	return nodeID(len(t.nodes) - 1), nil
}

func (t *tree[T]) newLeaf(seq SeqID, start int, parent nodeID, suffixID int) (nodeID, error) {
	if len(t.nodes) >= maxNodes {
		return nilNode, errors.Wrapf(ErrTooLarge, "%d nodes", len(t.nodes))
	}
	if !t.validSeq(seq) || len(t.seqs[seq]) == 0 {
		return nilNode, errors.Wrapf(ErrInvalidArgument, "empty base sequence %d", seq)
	}
	if parent == nilNode {
		return nilNode, errors.Wrap(ErrInvalidArgument, "empty parent node")
	}
	t.nodes = append(t.nodes, node[T]{
		kind:     Leaf,
		seq:      seq,
		start:    start,
		parent:   parent,
		link:     nilNode,
		suffixID: suffixID,
	})
	return nodeID(len(t.nodes) - 1), nil
}

func (t *tree[T]) validSeq(seq SeqID) bool {
	return seq > 0 && int(seq) < len(t.seqs)
}

func (t *tree[T]) isLeaf(id nodeID) bool {
	return t.nodes[id].kind == Leaf
}

func (t *tree[T]) isRoot(id nodeID) bool {
	return t.nodes[id].parent == nilNode
}

// length is the number of symbols on the incoming edge. A leaf counts its
// terminator.
func (t *tree[T]) length(id nodeID) int {
	n := &t.nodes[id]
	if n.kind == Leaf {
		return len(t.seqs[n.seq]) - n.start + 1
	}
	return n.end - n.start
}

// at is symbolAt without bounds checks, for the build and match paths.
func (t *tree[T]) at(id nodeID, i int) Key[T] {
	n := &t.nodes[id]
	s := t.seqs[n.seq]
	if n.start+i == len(s) {
		return TerminatorKey[T](n.seq)
	}
	return Key[T]{sym: s[n.start+i]}
}

func (t *tree[T]) symbolAt(id nodeID, i int) (Key[T], error) {
	if l := t.length(id); i < 0 || i >= l {
		return Key[T]{}, errors.Wrapf(ErrOutOfRange, "index %d, edge length %d", i, l)
	}
	return t.at(id, i), nil
}

func (t *tree[T]) label(id nodeID) []T {
	n := &t.nodes[id]
	if n.parent == nilNode {
		return nil
	}
	s := t.seqs[n.seq]
	if n.kind == Leaf {
		return s[n.start:]
	}
	return s[n.start:n.end]
}

func (t *tree[T]) child(id nodeID, k Key[T]) (nodeID, bool) {
	c, ok := t.nodes[id].children[k]
	return c, ok
}

// setChild adds or replaces the edge keyed by k. A replaced edge keeps its
// place in the enumeration order.
func (t *tree[T]) setChild(id nodeID, k Key[T], child nodeID) {
	n := &t.nodes[id]
	if n.children == nil {
		n.children = make(map[Key[T]]nodeID)
	}
	if _, ok := n.children[k]; !ok {
		n.order = append(n.order, k)
	}
	n.children[k] = child
}

// recursiveForEach visits id and its subtree in pre-order.
func (t *tree[T]) recursiveForEach(id nodeID, callback func(nodeID) bool) traverseAction {
	if !callback(id) {
		return traverseStop
	}
	n := &t.nodes[id]
	for _, k := range n.order {
		if t.recursiveForEach(n.children[k], callback) == traverseStop {
			return traverseStop
		}
	}
	return traverseContinue
}

func (t *tree[T]) collectSuffixes(id nodeID, suffixes []Suffix) []Suffix {
	t.recursiveForEach(id, func(c nodeID) bool {
		if n := &t.nodes[c]; n.kind == Leaf {
			suffixes = append(suffixes, Suffix{Seq: n.seq, Start: n.suffixID})
		}
		return true
	})
	return suffixes
}

func (n nodeRef[T]) Type() NodeType {
	return n.t.nodes[n.id].kind
}

func (n nodeRef[T]) Len() int {
	return n.t.length(n.id)
}

// Label returns the incoming edge label without a terminator. The slice
// shares memory with the registered sequence: writing to it corrupts the
// tree.
func (n nodeRef[T]) Label() []T {
	return n.t.label(n.id)
}

func (n nodeRef[T]) SymbolAt(i int) (Key[T], error) {
	return n.t.symbolAt(n.id, i)
}

func (n nodeRef[T]) IsLeaf() bool {
	return n.t.isLeaf(n.id)
}

func (n nodeRef[T]) IsRoot() bool {
	return n.t.isRoot(n.id)
}

func (n nodeRef[T]) Child(k Key[T]) (Node[T], bool) {
	c, ok := n.t.child(n.id, k)
	if !ok {
		return nil, false
	}
	return nodeRef[T]{n.t, c}, true
}

func (n nodeRef[T]) Parent() (Node[T], bool) {
	p := n.t.nodes[n.id].parent
	if p == nilNode {
		return nil, false
	}
	return nodeRef[T]{n.t, p}, true
}

func (n nodeRef[T]) SuffixRef() (Suffix, bool) {
	nd := &n.t.nodes[n.id]
	if nd.kind != Leaf {
		return Suffix{}, false
	}
	return Suffix{Seq: nd.seq, Start: nd.suffixID}, true
}

// SuffixID is the start offset of a leaf's suffix, or -1 for an internal
// node.
func (n nodeRef[T]) SuffixID() int {
	nd := &n.t.nodes[n.id]
	if nd.kind != Leaf {
		return -1
	}
	return nd.suffixID
}

// Sequence is the sequence the incoming edge label is read from. It is 0
// for the root.
func (n nodeRef[T]) Sequence() SeqID {
	return n.t.nodes[n.id].seq
}

// Suffix returns the symbols of a leaf's suffix without its terminator, or
// nil for an internal node. Like Label it shares the registered sequence.
func (n nodeRef[T]) Suffix() []T {
	nd := &n.t.nodes[n.id]
	if nd.kind != Leaf {
		return nil
	}
	return n.t.seqs[nd.seq][nd.suffixID:]
}

// Path returns the edge labels from the root down to n.
func (n nodeRef[T]) Path() [][]T {
	var path [][]T
	for id := n.id; id != nilNode && !n.t.isRoot(id); id = n.t.nodes[id].parent {
		path = append(path, n.t.label(id))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
