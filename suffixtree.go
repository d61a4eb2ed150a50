package suffixtree

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	Internal NodeType = iota
	Leaf
)

const (
	traverseStop traverseAction = iota
	traverseContinue
)

const (
	nilNode  nodeID = -1
	rootNode nodeID = 0

	// terminatorMark is carried by every real Terminator, so the zero value
	// never compares equal to one.
	terminatorMark = 0x7e57ab1e

	// MaxNodes bounds the node arena, root included. A sequence of length n
	// adds at most 2n nodes.
	MaxNodes = math.MaxInt32
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("index out of range")
	ErrNoMoreNodes     = errors.New("there are no more nodes in the tree")
	ErrTooLarge        = errors.New("tree exceeds the node limit")

	// lowered by tests
	maxNodes = MaxNodes
)

type (
	// SeqID identifies one registered sequence. Ids start at 1 and grow
	// monotonically; 0 is never assigned.
	SeqID uint32

	NodeType int

	nodeID int32

	// Terminator is the synthetic end symbol of one registered sequence.
	// It is unique per registration, not per content.
	Terminator struct {
		seq  SeqID
		mark uint32
	}

	// Key is an edge symbol: either a real symbol or a Terminator.
	Key[T comparable] struct {
		sym  T
		term Terminator
	}

	// Suffix names one suffix of a registered sequence by its start offset.
	Suffix struct {
		Seq   SeqID
		Start int
	}

	// node is stored in the tree arena. Edges reference [start, end) of
	// the sequence seq; a leaf's end is virtual and always len(seq)+1.
	node[T comparable] struct {
		kind   NodeType
		seq    SeqID
		start  int
		end    int
		parent nodeID

		// internal only
		children map[Key[T]]nodeID
		// child keys in insertion order
		order []Key[T]
		link  nodeID

		// leaf only
		suffixID int
	}

	tree[T comparable] struct {
		nodes []node[T]
		// indexed by SeqID, slot 0 unused
		seqs   [][]T
		leaves int
		log    zerolog.Logger
	}

	nodeRef[T comparable] struct {
		t  *tree[T]
		id nodeID
	}

	cursor[T comparable] struct {
		t      *tree[T]
		node   nodeID
		key    Key[T]
		hasKey bool
		offset int
	}

	// Position is an immutable bookmark of a cursor. Positions taken from
	// the same tree compare with ==.
	Position[T comparable] struct {
		t      *tree[T]
		node   nodeID
		key    Key[T]
		hasKey bool
		offset int
	}

	// buildContext is the active point of one sequence insertion plus the
	// phase counters. It is dropped once the terminator has been added.
	buildContext[T comparable] struct {
		cursor[T]
		seq       SeqID
		processed int
		leaves    int
	}

	Callback[T comparable] func(n Node[T]) bool

	traverseAction int

	iteratorLevel struct {
		node     nodeID
		childIdx int
	}

	iterator[T comparable] struct {
		tree       *tree[T]
		nextNode   nodeID
		depthLevel int
		depth      []*iteratorLevel
	}
)

func newTerminator(seq SeqID) Terminator {
	return Terminator{seq: seq, mark: terminatorMark}
}

// Seq returns the registration id the terminator belongs to.
func (e Terminator) Seq() SeqID {
	return e.seq
}

func (e Terminator) valid() bool {
	return e.mark == terminatorMark
}

func (e Terminator) String() string {
	return fmt.Sprintf("$%d", e.seq)
}

// SymbolKey wraps a real symbol as an edge key.
func SymbolKey[T comparable](sym T) Key[T] {
	return Key[T]{sym: sym}
}

// TerminatorKey is the edge key of the terminator that ends sequence seq.
func TerminatorKey[T comparable](seq SeqID) Key[T] {
	return Key[T]{term: newTerminator(seq)}
}

func (k Key[T]) IsTerminator() bool {
	return k.term.valid()
}

// Symbol returns the real symbol, or false for a terminator.
func (k Key[T]) Symbol() (T, bool) {
	if k.IsTerminator() {
		var zero T
		return zero, false
	}
	return k.sym, true
}

// Terminator returns the terminator, or false for a real symbol.
func (k Key[T]) Terminator() (Terminator, bool) {
	return k.term, k.IsTerminator()
}

func (k Key[T]) String() string {
	if k.IsTerminator() {
		return k.term.String()
	}
	return fmt.Sprint(k.sym)
}

func (t NodeType) String() string {
	return []string{"Internal", "Leaf"}[t]
}

func (s Suffix) String() string {
	return fmt.Sprintf("%d:%d", s.Seq, s.Start)
}
