package suffixtree

import (
	"github.com/cockroachdb/errors"
)

func newTree[T comparable](opts ...Option) *tree[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &tree[T]{
		nodes: make([]node[T], 0, o.capacity+1),
		seqs:  [][]T{nil},
		log:   o.logger,
	}
	if _, err := t.newInternal(0, 0, 0, nilNode); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "root"))
	}
	return t
}

func (t *tree[T]) Size() int {
	if t == nil {
		return 0
	}
	return t.leaves
}

func (t *tree[T]) Sequences() int {
	return len(t.seqs) - 1
}

func (t *tree[T]) Sequence(id SeqID) ([]T, bool) {
	if !t.validSeq(id) {
		return nil, false
	}
	return t.seqs[id], true
}

func (t *tree[T]) Root() Node[T] {
	return nodeRef[T]{t, rootNode}
}

func (t *tree[T]) NewCursor() Cursor[T] {
	c := t.newCursor()
	return &c
}

func (t *tree[T]) RegisterSequence(seq []T) SeqID {
	if len(seq) == 0 {
		t.log.Debug().Msg("skipping empty sequence")
		return 0
	}
	if free := maxNodes - len(t.nodes); len(seq) > free/2 {
		panic(errors.Wrapf(ErrTooLarge, "sequence of length %d, %d nodes free", len(seq), free))
	}

	t.seqs = append(t.seqs, seq)
	ctx := &buildContext[T]{
		cursor: t.newCursor(),
		seq:    SeqID(len(t.seqs) - 1),
	}
	for _, sym := range seq {
		t.extend(ctx, SymbolKey(sym))
	}
	// the terminator turns the implicit tree into an explicit one
	t.extend(ctx, TerminatorKey[T](ctx.seq))

	t.log.Debug().
		Uint32("seq", uint32(ctx.seq)).
		Int("len", len(seq)).
		Int("leaves", ctx.leaves).
		Int("nodes", len(t.nodes)).
		Msg("sequence registered")
	return ctx.seq
}

// extend runs one phase: it adds k to every suffix that is still implicit,
// stopping as soon as k is already present below the active point.
func (t *tree[T]) extend(ctx *buildContext[T], k Key[T]) {
	ctx.processed++
	total := len(t.seqs[ctx.seq])

	prev := nilNode
	cur := ctx.node
	for ctx.leaves < ctx.processed && ctx.leaves < total {
		if ctx.match(k) {
			break
		}

		cur = t.insertLeaf(ctx, k)
		ctx.leaves++
		ctx.MoveUp()

		if prev != nilNode {
			t.nodes[prev].link = cur
		}
		if !t.isRoot(cur) && t.nodes[cur].link == nilNode {
			prev = cur
			cur = ctx.node
		} else {
			prev = nilNode
		}
	}

	if prev != nilNode {
		t.nodes[prev].link = cur
	}
}

// insertLeaf hangs a new leaf for k at the active point, splitting the
// pending edge first when the active point is inside it. It returns the
// node the leaf was attached to.
func (t *tree[T]) insertLeaf(ctx *buildContext[T], k Key[T]) nodeID {
	at := ctx.node
	if ctx.offset > 0 {
		child := ctx.pending()
		c := t.nodes[child]
		split := c.start + ctx.offset

		mid, err := t.newInternal(c.seq, c.start, split, ctx.node)
		if err != nil {
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "split node %d", child))
		}
		t.setChild(ctx.node, ctx.key, mid)
		t.nodes[child].start = split
		t.nodes[child].parent = mid
		t.setChild(mid, t.at(child, 0), child)
		at = mid

		t.log.Trace().
			Int32("node", int32(child)).
			Int32("mid", int32(mid)).
			Int("split", split).
			Msg("edge split")
	}

	leaf, err := t.newLeaf(ctx.seq, ctx.processed-1, at, ctx.leaves)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "leaf %d of sequence %d", ctx.leaves, ctx.seq))
	}
	t.setChild(at, k, leaf)
	t.leaves++

	t.log.Trace().
		Uint32("seq", uint32(ctx.seq)).
		Int("suffix", ctx.leaves).
		Int32("parent", int32(at)).
		Msg("leaf added")
	return at
}

// Find returns every suffix starting with pattern, or nil when pattern does
// not occur. An empty pattern matches every suffix.
func (t *tree[T]) Find(pattern []T) []Suffix {
	c := t.newCursor()
	for _, sym := range pattern {
		if !c.Match(sym) {
			return nil
		}
	}
	return c.SuffixesBelow()
}

func (t *tree[T]) Contains(pattern []T) bool {
	c := t.newCursor()
	for _, sym := range pattern {
		if !c.Match(sym) {
			return false
		}
	}
	return true
}

// ForEach calls callback for every node in pre-order until it returns
// false.
func (t *tree[T]) ForEach(callback Callback[T]) {
	t.recursiveForEach(rootNode, func(id nodeID) bool {
		return callback(nodeRef[T]{t, id})
	})
}

// Iterator walks every node in pre-order, root first. It must not be used
// across a RegisterSequence call.
func (t *tree[T]) Iterator() Iterator[T] {
	return &iterator[T]{
		tree:       t,
		nextNode:   rootNode,
		depthLevel: 0,
		depth:      []*iteratorLevel{{rootNode, 0}},
	}
}

func (it *iterator[T]) HasNext() bool {
	return it != nil && it.nextNode != nilNode
}

func (it *iterator[T]) Next() (Node[T], error) {
	if !it.HasNext() {
		return nil, ErrNoMoreNodes
	}
	cur := it.nextNode
	it.next()
	return nodeRef[T]{it.tree, cur}, nil
}

func (it *iterator[T]) next() {
	for {
		level := it.depth[it.depthLevel]
		n := &it.tree.nodes[level.node]

		if level.childIdx < len(n.order) {
			child := n.children[n.order[level.childIdx]]
			level.childIdx++
			it.nextNode = child

			it.depthLevel++
			if it.depthLevel >= len(it.depth) {
				it.depth = append(it.depth, nil)
			}
			it.depth[it.depthLevel] = &iteratorLevel{child, 0}
			return
		}

		if it.depthLevel == 0 {
			it.nextNode = nilNode
			return
		}
		it.depthLevel--
	}
}
