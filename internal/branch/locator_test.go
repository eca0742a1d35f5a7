package branch

import (
	"context"
	"sort"
	"testing"

	"thunder-cargo/internal/models"
	"thunder-cargo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(bs []models.Branch) []uint {
	out := make([]uint, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestCitiesAndDistricts(t *testing.T) {
	db, _ := testutil.NewDB(t)
	l := NewLocator(db)
	ctx := context.Background()

	cities, err := l.Cities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ankara", "Istanbul", "Izmir"}, cities)

	districts, err := l.Districts(ctx, "Istanbul")
	require.NoError(t, err)
	assert.Equal(t, []string{"Besiktas", "Kadikoy", "Uskudar"}, districts)

	districts, err = l.Districts(ctx, "Trabzon")
	require.NoError(t, err)
	assert.Empty(t, districts)

	_, err = l.Districts(ctx, "  ")
	assert.ErrorIs(t, err, ErrCityRequired)
}

func TestAllDistrictsIsUnionOfDistricts(t *testing.T) {
	db, _ := testutil.NewDB(t)
	l := NewLocator(db)
	ctx := context.Background()

	all, err := l.Branches(ctx, "Istanbul", AllDistricts)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, b := range all {
		assert.Equal(t, "Istanbul", b.City)
	}

	districts, err := l.Districts(ctx, "Istanbul")
	require.NoError(t, err)

	seen := map[uint]string{}
	var union []models.Branch
	for _, d := range districts {
		part, err := l.Branches(ctx, "Istanbul", d)
		require.NoError(t, err)
		require.NotEmpty(t, part)

		assert.Subset(t, ids(all), ids(part), "district %s must narrow the city result", d)
		for _, b := range part {
			assert.Equal(t, d, b.District)
			prev, dup := seen[b.ID]
			assert.False(t, dup, "branch %d in both %s and %s", b.ID, prev, d)
			seen[b.ID] = d
		}
		union = append(union, part...)
	}
	assert.Equal(t, ids(all), ids(union))
}

func TestBranchesDistrictFilter(t *testing.T) {
	db, _ := testutil.NewDB(t)
	l := NewLocator(db)
	ctx := context.Background()

	kadikoy, err := l.Branches(ctx, "Istanbul", "Kadikoy")
	require.NoError(t, err)
	require.Len(t, kadikoy, 2)
	assert.Equal(t, "Kadikoy Branch", kadikoy[0].Name)
	assert.Equal(t, "Moda Branch", kadikoy[1].Name)

	empty, err := l.Branches(ctx, "Istanbul", "")
	require.NoError(t, err)
	assert.Len(t, empty, 4)

	lower, err := l.Branches(ctx, "Istanbul", "all districts")
	require.NoError(t, err)
	assert.Len(t, lower, 4)

	none, err := l.Branches(ctx, "Istanbul", "Konak")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = l.Branches(ctx, "", "Kadikoy")
	assert.ErrorIs(t, err, ErrCityRequired)
}
