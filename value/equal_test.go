package value

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type celsius struct{ deg float64 }

func (c celsius) Equal(other any) bool {
	o, ok := other.(celsius)
	return ok && o.deg == c.deg
}

func (c celsius) Clone() any { return celsius{deg: c.deg} }

func TestEqual(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		a, b    any
		equal   bool
		ordered bool
	}{
		{"nulls", nil, nil, true, true},
		{"null vs zero", nil, 0, false, false},
		{"NaN equals NaN", math.NaN(), math.NaN(), true, true},
		{"NaN vs number", math.NaN(), 1.0, false, false},
		{"numbers across kinds", 1, 1.0, true, true},
		{"number vs string", 1, "1", false, false},
		{"strings", "a", "a", true, true},
		{"dates by instant", now, now.UTC(), true, true},
		{"binary", Binary{1, 2}, []byte{1, 2}, true, true},
		{"binary length", Binary{1}, Binary{1, 2}, false, false},
		{"regex", &Regex{Pattern: "a", Options: "i"}, &Regex{Pattern: "a", Options: "i"}, true, true},
		{"regex options differ", &Regex{Pattern: "a"}, &Regex{Pattern: "a", Options: "i"}, false, false},
		{"arrays", A(1, D("x", 2)), A(1.0, D("x", 2.0)), true, true},
		{"array length", A(1), A(1, 1), false, false},
		{"array vs raw slice", A("a"), []any{"a"}, true, true},
		{"documents same order", D("a", 1, "b", 2), D("a", 1, "b", 2), true, true},
		{"documents other order", D("a", 1, "b", 2), D("b", 2, "a", 1), true, false},
		{"documents extra key", D("a", 1), D("a", 1, "b", 2), false, false},
		{"nested order", A(D("a", 1, "b", 2)), A(D("b", 2, "a", 1)), true, false},
		{"equatable", celsius{1}, celsius{1}, true, true},
		{"equatable differs", celsius{1}, celsius{2}, false, false},
		{"document vs array", D(), A(), false, false},
		{"int keyed maps", map[int]int{1: 1}, map[int]int{1: 1}, true, true},
		{"int keyed maps differ", map[int]int{1: 1}, map[int]int{1: 2}, false, false},
		{"int keyed map in document", D("m", map[int]string{1: "x"}), D("m", map[int]string{1: "x"}), true, true},
		{"int keyed map vs document", map[int]int{1: 1}, D("1", 1), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.a, tt.b), "Equal")
			assert.Equal(t, tt.equal, Equal(tt.b, tt.a), "Equal symmetric")
			assert.Equal(t, tt.ordered, EqualOrdered(tt.a, tt.b), "EqualOrdered")
		})
	}
}

func TestClone(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	re := &Regex{Pattern: "^a"}
	bin := Binary{1, 2, 3}
	orig := D(
		"n", 1.5,
		"s", "text",
		"date", date,
		"re", re,
		"bin", bin,
		"list", A(1, D("deep", A("x"))),
		"custom", celsius{20},
	)

	got := Clone(orig).(*Document)
	require.NotSame(t, orig, got)
	assert.True(t, EqualOrdered(orig, got))
	assert.Equal(t, orig.Keys(), got.Keys())

	gotRe, _ := got.Get("re")
	assert.Same(t, re, gotRe, "regular expressions are shared")

	gotBin, _ := got.Get("bin")
	gotBin.(Binary)[0] = 9
	assert.Equal(t, byte(1), bin[0], "binary is copied")

	list, _ := got.Get("list")
	inner := list.(*Array).Get(1).(*Document)
	deep, _ := inner.Get("deep")
	deep.(*Array).Append("y")
	origList, _ := orig.Get("list")
	origDeep, _ := origList.(*Array).Get(1).(*Document).Get("deep")
	assert.Equal(t, 1, origDeep.(*Array).Len(), "nested arrays are copied")
}

func TestClone_RawContainers(t *testing.T) {
	got := Clone(map[string]any{"b": []any{1}, "a": true})
	d, ok := got.(*Document)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, d.Keys())
	b, _ := d.Get("b")
	assert.IsType(t, &Array{}, b)
}
