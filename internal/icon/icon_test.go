package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShapes(t *testing.T) {
	ids := IDs()
	require.Len(t, ids, 20)
	for _, id := range ids {
		b, ok := Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, Size, b.W, id)
		assert.Equal(t, Size, b.H, id)
		assert.Greater(t, b.Count(), 0, id)
		assert.NotEmpty(t, Name(id), id)
	}
}

func TestLookupUnknown(t *testing.T) {
	b, ok := Lookup("unicorn")
	assert.False(t, ok)
	assert.Nil(t, b)
	assert.Empty(t, Name("unicorn"))
}

func TestLookupReturnsCopy(t *testing.T) {
	a, _ := Lookup("heart")
	a.Clear()
	b, _ := Lookup("heart")
	assert.Greater(t, b.Count(), 0)
}

func TestHeartRows(t *testing.T) {
	b, _ := Lookup("heart")
	assert.Equal(t, "........\n.##..##.\n########\n########\n########\n.######.\n..####..\n...##...", b.String())
}
