package wire_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pmsbridge/internal/wire"
)

func TestSeq(t *testing.T) {
	assert.Nil(t, wire.Seq(nil))
	assert.Len(t, wire.Seq(map[string]any{"a": "b"}), 1)
	assert.Len(t, wire.Seq("scalar"), 1)
	assert.Len(t, wire.Seq([]any{1, 2, 3}), 3)
}

// Decoding is deterministic: the same bytes always yield an equal node tree.
func TestDecodeXML_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(t, "n")
		var b strings.Builder
		b.WriteString(`<days total="` + fmt.Sprint(n) + `">`)
		for i := 0; i < n; i++ {
			amount := rapid.Float64Range(0, 1000).Draw(t, "amount")
			fmt.Fprintf(&b, `<day date="2024-02-%02d"><total>%.2f</total></day>`, i+1, amount)
		}
		b.WriteString(`</days>`)

		first, err := wire.DecodeXML([]byte(b.String()))
		require.NoError(t, err)
		second, err := wire.DecodeXML([]byte(b.String()))
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

// A repeatable key with one occurrence must behave, after Seq, exactly like a
// multi-occurrence input: same per-item structure, only the count differs.
func TestSeq_SingleVsMany(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "n")
		var b strings.Builder
		b.WriteString("<images>")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, `<image url="img-%d.jpg"/>`, i)
		}
		b.WriteString("</images>")

		doc, err := wire.DecodeXML([]byte(b.String()))
		require.NoError(t, err)

		seq := wire.Seq(wire.AsMap(doc["images"])["image"])
		require.Len(t, seq, n)
		for i, item := range seq {
			m := wire.AsMap(item)
			require.NotNil(t, m)
			require.Equal(t, fmt.Sprintf("img-%d.jpg", i), wire.Attrs(m)["url"])
		}
	})
}

// Coercions are pure: reading the same node twice yields the same value and
// never mutates the node.
func TestCoerce_Pure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := rapid.Float64Range(-1e6, 1e6).Draw(t, "f")
		s := rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "s")
		n := map[string]any{"f": f, "s": s}

		require.Equal(t, wire.Float(n, "f", 0), wire.Float(n, "f", 0))
		require.Equal(t, wire.Int64(n, "s", 0), wire.Int64(n, "s", 0))
		require.Equal(t, f != 0, wire.Bool(n, "f", false))
		require.Equal(t, map[string]any{"f": f, "s": s}, n)
	})
}
