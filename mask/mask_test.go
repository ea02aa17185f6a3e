package mask_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heringerp/panacus/core"
	"github.com/heringerp/panacus/mask"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxInt = int(^uint(0) >> 1)

func segs(names ...string) []core.PathSegment {
	out := make([]core.PathSegment, len(names))
	for i, n := range names {
		out[i] = core.ParsePathSegment(n)
	}
	return out
}

var fourPaths = segs("a#1#chr1", "a#2#chr1", "b#1#chr1", "b#1#chr2")

func TestNew_Grouping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []core.PathSegment
		settings mask.Settings
		groups   []string
		entries  []mask.PathGroup
	}{
		{
			name:     "path",
			paths:    fourPaths,
			settings: mask.Settings{Mode: mask.GroupByPath},
			groups:   []string{"a#1#chr1", "a#2#chr1", "b#1#chr1", "b#1#chr2"},
			entries:  []mask.PathGroup{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		},
		{
			name:     "sample",
			paths:    fourPaths,
			settings: mask.Settings{Mode: mask.GroupBySample},
			groups:   []string{"a", "b"},
			entries:  []mask.PathGroup{{0, 0}, {1, 0}, {2, 1}, {3, 1}},
		},
		{
			name:     "haplotype",
			paths:    fourPaths,
			settings: mask.Settings{Mode: mask.GroupByHaplotype},
			groups:   []string{"a#1", "a#2", "b#1"},
			entries:  []mask.PathGroup{{0, 0}, {1, 1}, {2, 2}, {3, 2}},
		},
		{
			name:     "graph order differs from group order",
			paths:    segs("b#1#chr1", "a#1#chr1"),
			settings: mask.Settings{Mode: mask.GroupBySample},
			groups:   []string{"a", "b"},
			entries:  []mask.PathGroup{{1, 0}, {0, 1}},
		},
		{
			name:     "explicit order",
			paths:    fourPaths,
			settings: mask.Settings{Mode: mask.GroupBySample, Order: []string{"b", "a"}},
			groups:   []string{"b", "a"},
			entries:  []mask.PathGroup{{2, 0}, {3, 0}, {0, 1}, {1, 1}},
		},
		{
			name:  "group list",
			paths: fourPaths,
			settings: mask.Settings{Mode: mask.GroupByFile, Groups: []mask.GroupEntry{
				{Path: core.ParsePathSegment("a"), Group: "G1"},
				{Path: core.ParsePathSegment("b#1#chr1"), Group: "G2"},
				{Path: core.ParsePathSegment("b#1#chr2"), Group: "G1"},
			}},
			groups:  []string{"G1", "G2"},
			entries: []mask.PathGroup{{0, 0}, {1, 0}, {3, 0}, {2, 1}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := mask.New(tc.paths, tc.settings)
			require.NoError(t, err)
			assert.Equal(t, tc.groups, m.Groups())
			assert.Equal(t, len(tc.groups), m.GroupCount())
			assert.Equal(t, tc.entries, m.PathOrder().Entries())
			for _, e := range tc.entries {
				id, ok := m.GroupOf(e.Path)
				require.True(t, ok)
				assert.Equal(t, e.Group, id)
			}
		})
	}
}

func TestNew_IncludeExclude(t *testing.T) {
	t.Parallel()
	m, err := mask.New(fourPaths, mask.Settings{
		Mode:    mask.GroupBySample,
		Include: segs("a#1#chr1:10-20", "b#1"),
		Exclude: segs("a#1#chr1:5-8", "a#1#chr1:12-15"),
	})
	require.NoError(t, err)

	assert.True(t, m.HasInclude())
	assert.True(t, m.HasExclude())
	assert.Equal(t, []mask.Interval{{Start: 10, End: 20}}, m.IncludeCoords(0))
	assert.Nil(t, m.IncludeCoords(1))
	assert.Equal(t, []mask.Interval{{Start: 0, End: maxInt}}, m.IncludeCoords(2))
	assert.Equal(t, []mask.Interval{{Start: 5, End: 8}, {Start: 12, End: 15}}, m.ExcludeCoords(0))
	assert.Nil(t, m.ExcludeCoords(2))
	assert.Equal(t, []int{0}, m.ExcludedPaths())

	_, ok := m.GroupOf(1)
	assert.False(t, ok)
	assert.Equal(t, []mask.PathGroup{{0, 0}, {2, 1}, {3, 1}}, m.PathOrder().Entries())
}

func TestNew_PathWithCoordinates(t *testing.T) {
	t.Parallel()
	m, err := mask.New(segs("a#1#chr1:100-200"), mask.Settings{Include: segs("a#1#chr1:150-400")})
	require.NoError(t, err)
	assert.Equal(t, []mask.Interval{{Start: 50, End: 100}}, m.IncludeCoords(0))
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings mask.Settings
		want     error
	}{
		{"unknown subset path", mask.Settings{Include: segs("z")}, mask.ErrUnknownPath},
		{"unknown exclude path", mask.Settings{Exclude: segs("a#9")}, mask.ErrUnknownPath},
		{"file mode without entries", mask.Settings{Mode: mask.GroupByFile}, mask.ErrBadGrouping},
		{"missing group", mask.Settings{Mode: mask.GroupByFile, Groups: []mask.GroupEntry{
			{Path: core.ParsePathSegment("a"), Group: "G"},
		}}, mask.ErrMissingGroup},
		{"unknown group entry", mask.Settings{Mode: mask.GroupByFile, Groups: []mask.GroupEntry{
			{Path: core.ParsePathSegment("a"), Group: "G"},
			{Path: core.ParsePathSegment("b"), Group: "G"},
			{Path: core.ParsePathSegment("c"), Group: "H"},
		}}, mask.ErrUnknownPath},
		{"incomplete order", mask.Settings{Mode: mask.GroupBySample, Order: []string{"a"}}, mask.ErrIncompleteOrder},
		{"unknown order group", mask.Settings{Mode: mask.GroupBySample, Order: []string{"a", "b", "c"}}, mask.ErrUnknownGroup},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := mask.New(fourPaths, tc.settings)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, mask.ErrConfig)
		})
	}
}

func TestNewPathOrder(t *testing.T) {
	t.Parallel()
	o, err := mask.NewPathOrder([]mask.PathGroup{{3, 0}, {1, 0}, {0, 1}}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, o.Len())
	assert.Equal(t, 2, o.Groups())

	_, err = mask.NewPathOrder([]mask.PathGroup{{0, 1}, {1, 0}}, 2)
	require.ErrorIs(t, err, mask.ErrUnsortedOrder)
	assert.NotErrorIs(t, err, mask.ErrConfig)

	_, err = mask.NewPathOrder([]mask.PathGroup{{0, 2}}, 2)
	require.ErrorIs(t, err, mask.ErrUnsortedOrder)

	_, err = mask.NewPathOrder([]mask.PathGroup{{0, 0}, {0, 1}}, 2)
	require.ErrorIs(t, err, mask.ErrDuplicatePath)
}

func TestFromParams_Files(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	groupFile := filepath.Join(dir, "groups.tsv.gz")
	f, err := os.Create(groupFile)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("a#1#chr1\tX\na#2#chr1\tY\nb\tX\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	subset := filepath.Join(dir, "subset.bed")
	require.NoError(t, os.WriteFile(subset, []byte("track name=subset\na#1#chr1\t0\t50\nb#1#chr1\n"), 0o600))

	order := filepath.Join(dir, "order.txt")
	require.NoError(t, os.WriteFile(order, []byte("Y\nX\n"), 0o600))

	g := core.NewGraph()
	_, err = g.AddNode("1", 10)
	require.NoError(t, err)
	for _, p := range []string{"a#1#chr1", "a#2#chr1", "b#1#chr1", "b#1#chr2"} {
		_, err = g.AddPathByNames(p, []string{">1"})
		require.NoError(t, err)
	}

	m, err := mask.FromParams(mask.Params{
		Subset:   subset,
		Grouping: mask.ParseGrouping(groupFile),
		Order:    order,
	}, g)
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, m.Groups())
	assert.Equal(t, []mask.PathGroup{{0, 0}, {2, 0}}, m.PathOrder().Entries())
	assert.Equal(t, []mask.Interval{{Start: 0, End: 50}}, m.IncludeCoords(0))
}

func TestFromParams_Errors(t *testing.T) {
	t.Parallel()
	g := core.NewGraph()

	_, err := mask.FromParams(mask.Params{Grouping: mask.Grouping{Mode: mask.GroupByFile}}, g)
	require.ErrorIs(t, err, mask.ErrBadGrouping)

	_, err = mask.FromParams(mask.Params{Grouping: mask.Grouping{Mode: mask.GroupBySample, File: "x"}}, g)
	require.ErrorIs(t, err, mask.ErrBadGrouping)

	_, err = mask.FromParams(mask.Params{Subset: filepath.Join(t.TempDir(), "missing.bed")}, g)
	require.ErrorIs(t, err, mask.ErrConfig)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseGrouping(t *testing.T) {
	t.Parallel()
	assert.Equal(t, mask.Grouping{Mode: mask.GroupByPath}, mask.ParseGrouping(""))
	assert.Equal(t, mask.Grouping{Mode: mask.GroupBySample}, mask.ParseGrouping("Sample"))
	assert.Equal(t, mask.Grouping{Mode: mask.GroupByHaplotype}, mask.ParseGrouping("haplotype"))
	assert.Equal(t, mask.Grouping{Mode: mask.GroupByFile, File: "g.tsv"}, mask.ParseGrouping(" g.tsv "))
	assert.Equal(t, "file", mask.GroupByFile.String())
}

func TestParseGroups(t *testing.T) {
	t.Parallel()
	got, err := mask.ParseGroups(strings.NewReader("# comment\na#1\tG1\n\nb\tG2\r\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a#1", got[0].Path.ID())
	assert.Equal(t, "G1", got[0].Group)
	assert.Equal(t, "G2", got[1].Group)

	_, err = mask.ParseGroups(strings.NewReader("a#1\n"))
	require.ErrorIs(t, err, mask.ErrMalformedGroups)
	_, err = mask.ParseGroups(strings.NewReader("a#1#chr1:0-10\tG\n"))
	require.ErrorIs(t, err, mask.ErrCoordsNotPermitted)
	_, err = mask.ParseGroups(strings.NewReader("a\tG\na\tH\n"))
	require.ErrorIs(t, err, mask.ErrDuplicatePath)
	require.ErrorIs(t, err, mask.ErrConfig)
}

func TestParseOrder(t *testing.T) {
	t.Parallel()
	got, err := mask.ParseOrder(strings.NewReader("G2\n\nG1\tignored\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"G2", "G1"}, got)

	_, err = mask.ParseOrder(strings.NewReader("G\nG\n"))
	require.ErrorIs(t, err, mask.ErrMalformedGroups)
}
