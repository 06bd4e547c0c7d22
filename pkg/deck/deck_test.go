package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarott/pkg/catalog"
)

// scriptedSource 按预设序列返回值
type scriptedSource struct {
	values []int
	idx    int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[s.idx%len(s.values)] % n
	s.idx++
	return v
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestNewIsPermutation(t *testing.T) {
	cat := defaultCatalog(t)

	for seed := uint64(1); seed <= 20; seed++ {
		d := New(cat, true, NewSource(seed))
		require.Equal(t, cat.Len(), d.Len())
		require.Len(t, d.Reversed, cat.Len())

		seen := make(map[string]int)
		for _, c := range d.Order {
			seen[c.Name]++
		}
		require.Len(t, seen, cat.Len())
		for name, n := range seen {
			assert.Equal(t, 1, n, name)
		}
	}
}

func TestNewDeterministicWithSeed(t *testing.T) {
	cat := defaultCatalog(t)

	a := New(cat, true, NewSource(42))
	b := New(cat, true, NewSource(42))
	assert.Equal(t, a.Order, b.Order)
	assert.Equal(t, a.Reversed, b.Reversed)

	c := New(cat, true, NewSource(43))
	assert.NotEqual(t, a.Order, c.Order)
}

func TestNewFisherYatesOrder(t *testing.T) {
	cards := []catalog.Card{
		{Name: "A", Suit: catalog.SuitCups},
		{Name: "B", Suit: catalog.SuitCups},
		{Name: "C", Suit: catalog.SuitCups},
	}
	cat, err := catalog.New(cards)
	require.NoError(t, err)

	// i=2 swap with 0 -> C B A; i=1 swap with 1 -> C B A
	d := New(cat, false, &scriptedSource{values: []int{0, 1}})
	names := []string{d.Order[0].Name, d.Order[1].Name, d.Order[2].Name}
	assert.Equal(t, []string{"C", "B", "A"}, names)
}

func TestReversedDisabledIsAlwaysUpright(t *testing.T) {
	cat := defaultCatalog(t)

	for seed := uint64(0); seed < 10; seed++ {
		d := New(cat, false, NewSource(seed))
		for i := range d.Reversed {
			assert.False(t, d.IsReversed(i))
		}
	}
}

func TestReversedEnabledDrawsBoth(t *testing.T) {
	cat := defaultCatalog(t)
	d := New(cat, true, NewSource(7))

	var up, down int
	for i := range d.Reversed {
		if d.IsReversed(i) {
			down++
		} else {
			up++
		}
	}
	assert.NotZero(t, up)
	assert.NotZero(t, down)
}

func TestReorientKeepsOrder(t *testing.T) {
	cat := defaultCatalog(t)
	src := NewSource(3)
	d := New(cat, false, src)
	order := append([]catalog.Card(nil), d.Order...)

	d.Reorient(true, src)
	assert.Equal(t, order, d.Order)
	assert.Len(t, d.Reversed, len(order))

	d.Reorient(false, src)
	for i := range d.Reversed {
		assert.False(t, d.Reversed[i])
	}
}

func TestCardBounds(t *testing.T) {
	cat := defaultCatalog(t)
	d := New(cat, true, NewSource(1))

	_, ok := d.Card(-1)
	assert.False(t, ok)
	_, ok = d.Card(d.Len())
	assert.False(t, ok)
	assert.False(t, d.IsReversed(d.Len()))

	c, ok := d.Card(0)
	assert.True(t, ok)
	assert.Equal(t, d.Order[0], c)
}
