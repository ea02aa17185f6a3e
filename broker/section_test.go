package broker_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/heringerp/panacus/broker"
	"github.com/heringerp/panacus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSections(t *testing.T) {
	t.Parallel()
	in := "a  S1\nb\tS2\n\nc S2\n"
	got, err := broker.ParseSections(strings.NewReader(in), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []broker.Section{
		{Name: "S1", Groups: []int{0}},
		{Name: "S2", Groups: []int{1, 2}},
	}, got)
}

func TestParseSections_Errors(t *testing.T) {
	t.Parallel()
	groups := []string{"a"}
	_, err := broker.ParseSections(strings.NewReader("a S1 extra\n"), groups)
	assert.ErrorIs(t, err, broker.ErrMalformedSections)
	_, err = broker.ParseSections(strings.NewReader("z S1\n"), groups)
	assert.ErrorIs(t, err, broker.ErrUnknownGroup)
	_, err = broker.ParseSections(strings.NewReader("\n"), groups)
	assert.ErrorIs(t, err, broker.ErrNoSections)
}

func TestSectionGrowth(t *testing.T) {
	t.Parallel()
	b := newBroker(t, broker.WithCoverageMatrix(core.CountNode, false))
	curve, err := b.SectionGrowth([]broker.Section{
		{Name: "S1", Groups: []int{0}},
		{Name: "S2", Groups: []int{1, 2}},
	})
	require.NoError(t, err)
	// S1 = {a} covers nodes 1-3; S2 = {b, c} adds only node 4, held by b.
	assert.InDeltaSlice(t, []float64{3, 3.5, 4}, curve.Values, eps)
	assert.Equal(t, []broker.SectionStart{{Name: "S1", Index: 0}, {Name: "S2", Index: 1}}, curve.Starts)

	var buf bytes.Buffer
	require.NoError(t, curve.WriteTSV(&buf, []string{"panacus section-growth"}))
	want := "# panacus section-growth\n" +
		"panacus\tsection-growth\ncount\tnode\ncoverage\t1\nquorum\t0\n" +
		"0\tS1\t0\n1\tS1\t3\n2\tS2\t3.5\n3\tS2\t4\n"
	assert.Equal(t, want, buf.String())

	_, err = b.SectionGrowth(nil)
	assert.ErrorIs(t, err, broker.ErrNoSections)
}
