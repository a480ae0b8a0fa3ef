package urlquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_EncodeKeepsOrder(t *testing.T) {
	var v Values
	for _, k := range []string{"part1", "qty1", "part10", "qty10", "part2", "newcart"} {
		v.Add(k, "x")
	}

	assert.Equal(t, "part1=x&qty1=x&part10=x&qty10=x&part2=x&newcart=x", v.Encode())
	assert.Equal(t, 6, v.Len())
}

func TestValues_Escaping(t *testing.T) {
	var v Values
	v.Add("listName", "My BOM & spares")
	v.Add("cref1", "R1/R2")

	assert.Equal(t, "listName=My+BOM+%26+spares&cref1=R1%2FR2", v.Encode())
}

func TestValues_AppendTo(t *testing.T) {
	t.Run("empty values leave base untouched", func(t *testing.T) {
		var v Values
		assert.Equal(t, "https://example.com/a", v.AppendTo("https://example.com/a"))
	})

	t.Run("adds question mark", func(t *testing.T) {
		var v Values
		v.Add("PageSize", "10")
		assert.Equal(t, "https://example.com/a?PageSize=10", v.AppendTo("https://example.com/a"))
	})

	t.Run("extends existing query", func(t *testing.T) {
		var v Values
		v.Add("b", "2")
		assert.Equal(t, "https://example.com/a?a=1&b=2", v.AppendTo("https://example.com/a?a=1"))
	})
}
