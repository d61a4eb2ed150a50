package suffixtree

import (
	"github.com/cockroachdb/errors"
)

func (t *tree[T]) newCursor() cursor[T] {
	return cursor[T]{t: t, node: rootNode}
}

func (c *cursor[T]) Match(sym T) bool {
	return c.match(SymbolKey(sym))
}

func (c *cursor[T]) MatchKey(k Key[T]) bool {
	return c.match(k)
}

// match advances the cursor by one symbol. On failure the cursor is left
// untouched.
func (c *cursor[T]) match(k Key[T]) bool {
	t := c.t
	if c.offset == 0 {
		child, ok := t.child(c.node, k)
		if !ok {
			return false
		}
		c.key, c.hasKey, c.offset = k, true, 1
		c.canonicalize(child)
		return true
	}

	child := c.pending()
	if t.at(child, c.offset) != k {
		return false
	}
	c.offset++
	c.canonicalize(child)
	return true
}

// canonicalize moves onto child once the whole edge has been consumed.
func (c *cursor[T]) canonicalize(child nodeID) {
	if c.offset >= c.t.length(child) {
		c.node = child
		c.clearKey()
	}
}

func (c *cursor[T]) clearKey() {
	c.key = Key[T]{}
	c.hasKey = false
	c.offset = 0
}

func (c *cursor[T]) Reset() {
	for c.t.nodes[c.node].parent != nilNode {
		c.node = c.t.nodes[c.node].parent
	}
	c.clearKey()
}

// pending returns the child under the edge being walked, or nilNode.
func (c *cursor[T]) pending() nodeID {
	if !c.hasKey {
		return nilNode
	}
	child, ok := c.t.child(c.node, c.key)
	if !ok {
		panic(errors.AssertionFailedf("node %d has no edge %s", c.node, c.key))
	}
	return child
}

func (c *cursor[T]) Node() Node[T] {
	return nodeRef[T]{c.t, c.node}
}

func (c *cursor[T]) PendingChild() (Node[T], bool) {
	if !c.hasKey {
		return nil, false
	}
	return nodeRef[T]{c.t, c.pending()}, true
}

func (c *cursor[T]) Snapshot() Position[T] {
	return Position[T]{t: c.t, node: c.node, key: c.key, hasKey: c.hasKey, offset: c.offset}
}

// Restore returns the cursor to p, which must come from a cursor on the
// same tree.
func (c *cursor[T]) Restore(p Position[T]) {
	if p.t != c.t {
		panic(errors.AssertionFailedf("position from another tree"))
	}
	c.node, c.key, c.hasKey, c.offset = p.node, p.key, p.hasKey, p.offset
}

// SuffixesBelow lists every suffix that starts with the symbols matched so
// far. The order is not significant.
func (c *cursor[T]) SuffixesBelow() []Suffix {
	if c.hasKey {
		return c.t.collectSuffixes(c.pending(), nil)
	}
	return c.t.collectSuffixes(c.node, nil)
}

// MoveUp drops the first matched symbol, following the suffix link of the
// current node (or peeling one symbol off the edge at the root) and then
// skipping down whole edges until the remaining offset fits.
func (c *cursor[T]) MoveUp() {
	t := c.t
	n := c.pending()
	idx := 0
	if t.isRoot(c.node) {
		if c.offset > 0 {
			if t.length(n) > 1 {
				c.key = t.at(n, 1)
			} else {
				c.hasKey = false
				c.key = Key[T]{}
			}
			c.offset--
			idx++
		}
	} else {
		link := t.nodes[c.node].link
		if link == nilNode {
			panic(errors.AssertionFailedf("node %d has no suffix link", c.node))
		}
		c.node = link
	}

	for c.offset > 0 {
		child := c.pending()
		l := t.length(child)
		if c.offset < l {
			break
		}
		c.node = child
		c.offset -= l
		idx += l
		if c.offset > 0 {
			c.key = t.at(n, idx)
		}
	}
	if c.offset == 0 {
		c.clearKey()
	}
}

// Node is the node the position is anchored at. A pending edge, if any,
// hangs below it.
func (p Position[T]) Node() Node[T] {
	return nodeRef[T]{p.t, p.node}
}

func (p Position[T]) Offset() int {
	return p.offset
}

// Key returns the edge being walked, or false when the position is exactly
// at a node.
func (p Position[T]) Key() (Key[T], bool) {
	return p.key, p.hasKey
}
