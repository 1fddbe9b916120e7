package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/value"
)

func sortDocs(t *testing.T, cmp CompareFunc, docs ...any) []any {
	t.Helper()
	arr := value.A(docs...)
	require.NoError(t, arr.Sort(cmp))
	return arr.Values()
}

func TestCompileSort(t *testing.T) {
	a := value.D("name", "a", "score", 1.0)
	b := value.D("name", "b", "score", 2.0)
	c := value.D("name", "c", "score", 2.0)
	none := value.D("name", "d")

	t.Run("single key ascending", func(t *testing.T) {
		cmp, err := CompileSort(value.D("score", 1))
		require.NoError(t, err)
		got := sortDocs(t, cmp, c, a, none, b)
		assert.Equal(t, []any{none, a, c, b}, got, "missing sorts first, ties keep order")
	})

	t.Run("multiple keys and directions", func(t *testing.T) {
		cmp, err := CompileSort(value.D("score", -1, "name", 1))
		require.NoError(t, err)
		got := sortDocs(t, cmp, a, c, b)
		assert.Equal(t, []any{b, c, a}, got)
	})

	t.Run("array form", func(t *testing.T) {
		cmp, err := CompileSort(value.A(value.A("score", "desc"), "name"))
		require.NoError(t, err)
		got := sortDocs(t, cmp, a, c, b)
		assert.Equal(t, []any{b, c, a}, got)
	})
}

func TestCompileSort_Collation(t *testing.T) {
	lower := value.D("name", "apple")
	upper := value.D("name", "Banana")

	binary, err := CompileSort(value.D("name", 1))
	require.NoError(t, err)
	assert.Equal(t, []any{upper, lower}, sortDocs(t, binary, lower, upper))

	collated, err := CompileSort(value.D("name", 1), WithCollation(language.English))
	require.NoError(t, err)
	assert.Equal(t, []any{lower, upper}, sortDocs(t, collated, upper, lower))
}

func TestCompileSort_Errors(t *testing.T) {
	for name, spec := range map[string]any{
		"scalar":         "name",
		"empty":          value.D(),
		"zero direction": value.D("a", 0),
		"bad direction":  value.A(value.A("a", "up")),
		"bad pair":       value.A(value.A("a")),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := CompileSort(spec)
			assert.ErrorIs(t, err, docerrors.ErrOperatorShape)
		})
	}
}
