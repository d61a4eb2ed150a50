package suffixtree

// Tree is a generalized suffix tree. Registered sequences are borrowed, not
// copied, and must not be modified afterwards. A Tree is not safe for
// concurrent use while sequences are being registered.
type Tree[T comparable] interface {
	// RegisterSequence adds every suffix of seq to the tree and returns the
	// id assigned to it. An empty seq is ignored and yields 0. It panics
	// with ErrTooLarge, leaving the tree unchanged, when seq could push the
	// node count past MaxNodes.
	RegisterSequence(seq []T) SeqID
	NewCursor() Cursor[T]
	Find(pattern []T) []Suffix
	Contains(pattern []T) bool
	Sequence(id SeqID) ([]T, bool)
	Sequences() int
	Size() int
	Root() Node[T]
	Iterator() Iterator[T]
	ForEach(callback Callback[T])
}

// Cursor walks the tree one symbol at a time.
type Cursor[T comparable] interface {
	Match(sym T) bool
	// MatchKey is Match for any edge key, including a TerminatorKey.
	// Matching a terminator leaves the cursor on a leaf, where MoveUp
	// must not be called.
	MatchKey(k Key[T]) bool
	Reset()
	MoveUp()
	Node() Node[T]
	PendingChild() (Node[T], bool)
	Snapshot() Position[T]
	Restore(p Position[T])
	SuffixesBelow() []Suffix
}

type Iterator[T comparable] interface {
	HasNext() bool
	Next() (Node[T], error)
}

type Node[T comparable] interface {
	Type() NodeType
	Len() int
	Label() []T
	SymbolAt(i int) (Key[T], error)
	IsLeaf() bool
	IsRoot() bool
	Child(k Key[T]) (Node[T], bool)
	Parent() (Node[T], bool)
	SuffixRef() (Suffix, bool)
	SuffixID() int
	Sequence() SeqID
	Suffix() []T
	Path() [][]T
}

func New[T comparable](opts ...Option) Tree[T] {
	return newTree[T](opts...)
}

// NewFrom builds a tree holding every sequence in seqs.
func NewFrom[T comparable](seqs [][]T, opts ...Option) Tree[T] {
	t := newTree[T](opts...)
	for _, s := range seqs {
		t.RegisterSequence(s)
	}
	return t
}
