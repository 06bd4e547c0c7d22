package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	require.Equal(t, 78, cat.Len())

	first, ok := cat.At(0)
	require.True(t, ok)
	assert.Equal(t, "The Fool", first.Name)
	assert.Equal(t, "Deli", first.DisplayName)

	counts := map[Suit]int{}
	for _, c := range cat.Cards() {
		counts[c.Suit]++
		assert.NotEmpty(t, c.UprightMeaning, c.Name)
		assert.NotEmpty(t, c.ReversedMeaning, c.Name)
		assert.NotEmpty(t, c.Image, c.Name)
	}
	assert.Equal(t, 22, counts[SuitMajor])
	for _, s := range []Suit{SuitCups, SuitWands, SuitSwords, SuitPentacles} {
		assert.Equal(t, 14, counts[s], string(s))
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]Card{{Name: "A", Suit: SuitCups}, {Name: "A", Suit: SuitCups}})
	assert.Error(t, err)

	_, err = New([]Card{{Name: "A", Suit: "Coins"}})
	assert.Error(t, err)
}

func TestIndexOf(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 0, cat.IndexOf("The Fool", "Deli"))
	assert.Equal(t, 21, cat.IndexOf("The World", "Dünya"))
	assert.Equal(t, Unresolved, cat.IndexOf("The Fool", "Fool"))
	assert.Equal(t, Unresolved, cat.IndexOf("Nope", ""))

	for i, c := range cat.Cards() {
		assert.Equal(t, i, cat.IndexOf(c.Name, c.DisplayName))
	}
}

func TestSearch(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Len(t, cat.Search("", ""), 78)
	assert.Len(t, cat.Search("", "all"), 78)
	assert.Len(t, cat.Search("", SuitCups), 14)

	got := cat.Search("kupa", "")
	assert.Len(t, got, 14, "display name match is case-insensitive")

	got = cat.Search("queen", SuitSwords)
	require.Len(t, got, 1)
	assert.Equal(t, "Queen of Swords", got[0].Name)

	assert.Empty(t, cat.Search("queen", SuitMajor))
}

func TestLookup(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	c, err := cat.Lookup("The Star")
	require.NoError(t, err)
	assert.Equal(t, "Yıldız", c.DisplayName)

	_, err = cat.Lookup("The Comet")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Geçmiş", PositionLabel(0))
	assert.Equal(t, "Şimdi", PositionLabel(1))
	assert.Equal(t, "Gelecek", PositionLabel(2))
	assert.Equal(t, "Bilinmeyen", PositionLabel(3))
	assert.Equal(t, "Ters", OrientationLabel(true))
	assert.Equal(t, "Düz", OrientationLabel(false))

	c := Card{Name: "The Sun", DisplayName: "Güneş", UprightMeaning: "up", ReversedMeaning: "down"}
	assert.Equal(t, "The Sun (Güneş)", c.Label())
	assert.Equal(t, "down", c.Meaning(true))
	assert.Equal(t, "up", c.Meaning(false))
}
