package suffixtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorTraversal(t *testing.T) {
	tree := New[byte]()
	tree.RegisterSequence([]byte("xabxac"))
	searcher := tree.NewCursor()
	assert.Len(t, searcher.SuffixesBelow(), 6)

	assert.True(t, searcher.Match('c'))
	assert.Equal(t, []Suffix{{1, 5}}, searcher.SuffixesBelow())

	searcher.Reset()
	for _, c := range []byte("bxac") {
		assert.True(t, searcher.Match(c))
	}
	assert.Equal(t, []Suffix{{1, 2}}, searcher.SuffixesBelow())

	tree = New[byte]()
	tree.RegisterSequence([]byte("mississippi"))
	searcher = tree.NewCursor()
	assert.Len(t, searcher.SuffixesBelow(), 11)

	for _, c := range []byte("ssi") {
		assert.True(t, searcher.Match(c))
	}
	assert.ElementsMatch(t, []Suffix{{1, 2}, {1, 5}}, searcher.SuffixesBelow())
}

func TestCursorMatchTerminator(t *testing.T) {
	tree := New[byte]()
	id := tree.RegisterSequence([]byte("aa"))
	searcher := tree.NewCursor()

	require.True(t, searcher.Match('a'))
	assert.ElementsMatch(t, []Suffix{{id, 0}, {id, 1}}, searcher.SuffixesBelow())

	before := searcher.Snapshot()
	assert.False(t, searcher.MatchKey(TerminatorKey[byte](id+1)))
	assert.Equal(t, before, searcher.Snapshot())

	assert.True(t, searcher.MatchKey(TerminatorKey[byte](id)))
	assert.Equal(t, []Suffix{{id, 1}}, searcher.SuffixesBelow())
	assert.True(t, searcher.Node().IsLeaf())
	assert.False(t, searcher.Match('a'))

	dataSet := []string{"mississippi", "xabxac", "banana"}
	for _, d := range dataSet {
		tree := New[byte]()
		id := tree.RegisterSequence([]byte(d))
		for start := range d {
			searcher := tree.NewCursor()
			for _, c := range []byte(d[start:]) {
				require.True(t, searcher.MatchKey(SymbolKey(c)))
			}
			require.True(t, searcher.MatchKey(TerminatorKey[byte](id)), "%s[%d:]", d, start)
			assert.Equal(t, []Suffix{{id, start}}, searcher.SuffixesBelow(), "%s[%d:]", d, start)
		}
	}
}

func TestCursorTokenRun(t *testing.T) {
	data := []string{"19", "18", "28", "15", "8", "15", "5", "15",
		"9", "15", "4", "15", "9", "25", "27", "22", "6",
		"16", "20", "24", "20", "21", "21", "3", "3",
		"17", "17", "17", "13", "13", "13", "13", "16", "2",
		"22", "25", "20", "23", "24", "23", "22", "19",
		"18", "8", "9", "18", "19", "11", "1", "20", "2",
		"21", "17", "13", "13", "17", "13", "13", "13",
		"16", "22", "22", "19", "12", "23", "24", "17",
		"23", "17", "24", "1", "23", "23", "22", "3", "16",
		"22", "12", "8", "12", "22", "24", "21", "17", "21",
		"13", "13", "13", "13", "13", "17", "17", "17",
		"17", "23", "23", "20", "6", "7", "25", "8", "4",
		"4", "5", "4", "4", "4", "27", "26", "7", "26",
		"27", "4", "4", "4", "4", "4", "4"}

	tree := NewFrom([][]string{data})
	assert.Equal(t, len(data), tree.Size())

	searcher := tree.NewCursor()
	for _, c := range []string{"4", "4", "4", "4", "4", "4"} {
		assert.True(t, searcher.Match(c))
	}
	assert.Equal(t, []Suffix{{1, len(data) - 6}}, searcher.SuffixesBelow())
}

func TestCursorMoveUpAfterFailedMatch(t *testing.T) {
	data := []string{"10", "22", "16", "13", "13", "13", "13", "13", "13", "13",
		"3", "17", "17", "13", "17", "17", "21", "16", "16", "21",
		"13", "13", "13", "13", "13", "13", "13", "13", "13", "13",
		"13", "3", "16", "2", "16", "21", "17", "17", "14", "21",
		"2", "2", "6", "21", "12", "1", "23", "1", "22", "2", "21",
		"13", "13", "21", "21", "2", "22", "21", "13", "13", "13",
		"13", "13", "13", "13", "13", "13", "13", "13", "13", "13",
		"13", "13", "17", "21", "16", "16", "24", "20", "20", "23",
		"21", "17", "17", "21", "17", "13", "13", "13", "13", "13",
		"3", "3", "2", "26", "12", "19", "12", "23", "21", "17", "13",
		"13", "13", "13", "13", "13", "13", "13", "13", "13", "13",
		"13", "13", "3", "16", "16", "16", "24", "23", "14", "22",
		"16", "16", "13", "13", "13", "13", "13", "13", "13", "13",
		"13", "13", "13", "13", "13", "13", "13", "13", "13", "13",
		"13", "13", "13", "16", "2", "22"}

	dataSet := []struct {
		pattern []string
		miss    string
	}{
		{[]string{"13", "16", "2", "22"}, "4"},
		{[]string{"19", "12", "23", "21"}, "13"},
	}

	tree := NewFrom([][]string{data})
	for _, d := range dataSet {
		searcher := tree.NewCursor()
		for _, c := range d.pattern {
			assert.True(t, searcher.Match(c))
		}

		before := searcher.Snapshot()
		assert.False(t, searcher.Match(d.miss))
		assert.Equal(t, before, searcher.Snapshot())

		searcher.MoveUp()
		assert.False(t, searcher.Match(d.miss))
		assert.ElementsMatch(t, tree.Find(d.pattern[1:]), searcher.SuffixesBelow(), d.pattern)
	}
}

func TestCursorFailedMatchKeepsState(t *testing.T) {
	tree := NewFrom([][]byte{[]byte("mississippi")})
	searcher := tree.NewCursor()

	fresh := searcher.Snapshot()
	assert.False(t, searcher.Match('z'))
	assert.Equal(t, fresh, searcher.Snapshot())

	// mid-edge
	require.True(t, searcher.Match('s'))
	require.True(t, searcher.Match('s'))
	mid := searcher.Snapshot()
	assert.Equal(t, 1, mid.Offset())
	assert.False(t, searcher.Match('s'))
	assert.Equal(t, mid, searcher.Snapshot())

	// exactly at a node
	require.True(t, searcher.Match('i'))
	at := searcher.Snapshot()
	assert.Equal(t, 0, at.Offset())
	_, hasKey := at.Key()
	assert.False(t, hasKey)
	assert.False(t, searcher.Match('i'))
	assert.Equal(t, at, searcher.Snapshot())
}

func TestCursorMonotonic(t *testing.T) {
	tree := NewFrom([][]byte{[]byte("mississippi"), []byte("missouri")})
	searcher := tree.NewCursor()

	prev := searcher.SuffixesBelow()
	pattern := []byte("issi")
	for i, c := range pattern {
		require.True(t, searcher.Match(c))
		cur := searcher.SuffixesBelow()

		assert.ElementsMatch(t, bruteFind(tree, pattern[:i+1]), cur, string(pattern[:i+1]))
		assert.Subset(t, prev, cur)
		prev = cur
	}

	for _, c := range []byte("ppi") {
		require.True(t, searcher.Match(c))
	}
	assert.Equal(t, []Suffix{{1, 4}}, searcher.SuffixesBelow())
}

func TestCursorReset(t *testing.T) {
	tree := NewFrom([][]byte{[]byte("banana"), []byte("bandana")})
	searcher := tree.NewCursor()
	fresh := searcher.Snapshot()

	for _, c := range []byte("ana") {
		require.True(t, searcher.Match(c))
	}
	assert.NotEqual(t, fresh, searcher.Snapshot())

	searcher.Reset()
	assert.Equal(t, fresh, searcher.Snapshot())
	assert.True(t, searcher.Node().IsRoot())
	assert.Len(t, searcher.SuffixesBelow(), 13)
}

func TestCursorMoveUpAtRoot(t *testing.T) {
	tree := NewFrom([][]byte{[]byte("xabxac")})
	searcher := tree.NewCursor()
	fresh := searcher.Snapshot()

	searcher.MoveUp()
	assert.Equal(t, fresh, searcher.Snapshot())
	assert.Len(t, searcher.SuffixesBelow(), 6)
}

func TestCursorMoveUp(t *testing.T) {
	dataSet := []string{
		"xabxac",
		"mississippi",
		"abcabxabcd",
		"aabaabaaab",
		"banana",
	}

	for _, d := range dataSet {
		tree := NewFrom([][]byte{[]byte(d)})
		for i := 0; i < len(d); i++ {
			for j := i + 1; j <= len(d); j++ {
				pattern := []byte(d[i:j])
				searcher := tree.NewCursor()
				for _, c := range pattern {
					require.True(t, searcher.Match(c))
				}

				searcher.MoveUp()
				assert.ElementsMatch(t, tree.Find(pattern[1:]), searcher.SuffixesBelow(), "%s: %s", d, pattern)
			}
		}
	}
}

func TestCursorMoveUpMidEdge(t *testing.T) {
	tree := NewFrom([][]byte{[]byte("mississippi")})
	searcher := tree.NewCursor()
	for _, c := range []byte("iss") {
		require.True(t, searcher.Match(c))
	}
	pos := searcher.Snapshot()
	assert.Equal(t, 2, pos.Offset())

	searcher.MoveUp()
	pos = searcher.Snapshot()
	assert.Equal(t, 1, pos.Offset())
	k, ok := pos.Key()
	assert.True(t, ok)
	assert.Equal(t, SymbolKey[byte]('s'), k)
	assert.ElementsMatch(t, []Suffix{{1, 2}, {1, 5}}, searcher.SuffixesBelow())
}

func TestCursorPendingChild(t *testing.T) {
	tree := NewFrom([][]byte{[]byte("mississippi")})
	searcher := tree.NewCursor()

	_, ok := searcher.PendingChild()
	assert.False(t, ok)

	require.True(t, searcher.Match('s'))
	require.True(t, searcher.Match('s'))
	child, ok := searcher.PendingChild()
	require.True(t, ok)
	assert.Equal(t, []byte("si"), child.Label())
	assert.Equal(t, 2, child.Len())
	assert.Equal(t, []byte("s"), searcher.Node().Label())
}

func TestCursorSnapshotRestore(t *testing.T) {
	tree := NewFrom([][]byte{[]byte("mississippi")})
	searcher := tree.NewCursor()
	for _, c := range []byte("ss") {
		require.True(t, searcher.Match(c))
	}
	mark := searcher.Snapshot()

	require.True(t, searcher.Match('i'))
	require.True(t, searcher.Match('s'))
	assert.Equal(t, []Suffix{{1, 2}}, searcher.SuffixesBelow())

	searcher.Restore(mark)
	assert.Equal(t, mark, searcher.Snapshot())
	assert.Equal(t, []byte("s"), mark.Node().Label())
	k, ok := mark.Key()
	assert.True(t, ok)
	assert.Equal(t, SymbolKey[byte]('s'), k)
	assert.ElementsMatch(t, []Suffix{{1, 2}, {1, 5}}, searcher.SuffixesBelow())

	assert.Panics(t, func() {
		New[byte]().NewCursor().Restore(mark)
	})

	other := tree.NewCursor()
	other.Restore(mark)
	assert.True(t, other.Match('i'))
	assert.ElementsMatch(t, []Suffix{{1, 2}, {1, 5}}, other.SuffixesBelow())
}
