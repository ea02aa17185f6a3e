package hist_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/hist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := hist.WriteTable(&buf, []string{"run x"}, []hist.Column{
		hist.HistColumn(&hist.Hist{Count: core.CountNode, Coverage: []uint64{0, 5, 3, 2}}),
		{Kind: "growth", Count: core.CountNode, Coverage: "1", Quorum: "0", Values: []float64{math.NaN(), 5.5, 8, 10}},
	})
	require.NoError(t, err)
	want := "# run x\n" +
		"panacus\thist\tgrowth\n" +
		"count\tnode\tnode\n" +
		"coverage\t\t1\n" +
		"quorum\t\t0\n" +
		"0\t0\tNaN\n" +
		"1\t5\t5.5\n" +
		"2\t3\t8\n" +
		"3\t2\t10\n"
	assert.Equal(t, want, buf.String())

	hists, comments, err := hist.ParseHists(strings.NewReader(want))
	require.NoError(t, err)
	assert.Equal(t, []string{"# run x"}, comments)
	require.Len(t, hists, 1)
	assert.Equal(t, core.CountNode, hists[0].Count)
	assert.Equal(t, []uint64{0, 5, 3, 2}, hists[0].Coverage)
}

func TestWriteHists_RoundTrip(t *testing.T) {
	t.Parallel()
	in := []*hist.Hist{
		{Count: core.CountNode, Coverage: []uint64{0, 5, 3, 2}},
		{Count: core.CountBp, Coverage: []uint64{1, 50, 30}},
	}
	var buf bytes.Buffer
	require.NoError(t, hist.WriteHists(&buf, nil, in))
	out, comments, err := hist.ParseHists(&buf)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.Equal(t, in, out)
}

func TestParseHists_ShortForm(t *testing.T) {
	t.Parallel()
	h := &hist.Hist{Count: core.CountEdge, Coverage: []uint64{0, 4, 1}}
	var buf bytes.Buffer
	require.NoError(t, h.WriteTSV(&buf))
	assert.Equal(t, "hist\tedge\n0\t0\n1\t4\n2\t1\n", buf.String())

	out, _, err := hist.ParseHists(&buf)
	require.NoError(t, err)
	assert.Equal(t, []*hist.Hist{h}, out)
}

func TestParseHists_Errors(t *testing.T) {
	t.Parallel()
	for name, in := range map[string]string{
		"empty":          "",
		"missing header": "panacus\thist\ncount\tnode\n",
		"wrong label":    "panacus\thist\nkind\tnode\ncoverage\t\nquorum\t\n0\t1\n",
		"no hist column": "panacus\tgrowth\ncount\tnode\ncoverage\t1\nquorum\t0\n0\tNaN\n",
		"bad count":      "panacus\thist\ncount\tsheep\ncoverage\t\nquorum\t\n0\t1\n",
		"fraction":       "hist\tnode\n0\t1.5\n",
		"negative":       "hist\tnode\n0\t-1\n",
		"short no count": "hist\n0\t1\n",
		"short gap":      "hist\tnode\n0\t0\n2\t1\n",
		"short unsorted": "hist\tnode\n1\t2\n0\t0\n",
		"table gap":      "panacus\thist\ncount\tnode\ncoverage\t\nquorum\t\n0\t1\n2\t3\n",
		"interior hole":  "panacus\thist\tgrowth\ncount\tnode\tnode\ncoverage\t\t1\nquorum\t\t0\n0\t0\tNaN\n1\t\t3\n2\t2\t4\n",
	} {
		in := in
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := hist.ParseHists(strings.NewReader(in))
			require.ErrorIs(t, err, hist.ErrMalformedTable)
		})
	}
}

func TestParseHists_TrailingEmptyCells(t *testing.T) {
	t.Parallel()
	in := "panacus\thist\thist\ncount\tnode\tedge\ncoverage\t\t\nquorum\t\t\n0\t0\t0\n1\t2\t5\n2\t\t1\n"
	out, _, err := hist.ParseHists(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []uint64{0, 2}, out[0].Coverage)
	assert.Equal(t, []uint64{0, 5, 1}, out[1].Coverage)
}
