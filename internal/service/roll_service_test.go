package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
	"github.com/dom/league-roulette/internal/service"
	"github.com/dom/league-roulette/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }

func TestRollService_Roll(t *testing.T) {
	tests := []struct {
		name    string
		catalog *domain.Catalog
		patch   domain.FilterPatch
		wantErr error
		check   func(t *testing.T, res *service.RollResult)
	}{
		{
			name:    "catalog not loaded",
			catalog: nil,
			wantErr: domain.ErrCatalogNotReady,
		},
		{
			name:    "no champions",
			catalog: testutil.NewCatalogBuilder().WithChampions(0).Build(),
			wantErr: domain.ErrNoChampions,
		},
		{
			name:    "default filters",
			catalog: testutil.NewCatalogBuilder().Build(),
			check: func(t *testing.T, res *service.RollResult) {
				assert.Equal(t, testutil.FakeVersion, res.Version)
				assert.Equal(t, domain.DefaultFilterConfig(), res.Filters)
				for _, a := range res.Slots {
					require.NotNil(t, a.Role)
					require.NotNil(t, a.Champion)
					require.NotNil(t, a.Item)
					require.NotNil(t, a.Suffix)
				}
				testutil.AssertUniqueAssignments(t, res.Slots[:])
			},
		},
		{
			name:    "suffix disabled",
			catalog: testutil.NewCatalogBuilder().Build(),
			patch:   domain.FilterPatch{SuffixEnabled: boolPtr(false)},
			check: func(t *testing.T, res *service.RollResult) {
				assert.False(t, res.Filters.SuffixEnabled)
				for _, a := range res.Slots {
					assert.Nil(t, a.Suffix)
				}
			},
		},
		{
			name: "only boots with boots excluded",
			catalog: testutil.NewCatalogBuilder().
				WithItems(testutil.BootsItem("3006"), testutil.BootsItem("3047")).Build(),
			check: func(t *testing.T, res *service.RollResult) {
				for _, a := range res.Slots {
					assert.Nil(t, a.Item)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewRollService(roulette.StaticCatalog{C: tt.catalog}, roulette.DefaultRules(), nil)

			res, err := svc.Roll(tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestRollService_EligibleItems(t *testing.T) {
	cat := testutil.NewCatalogBuilder().
		WithItems(testutil.LegendaryItem("3031"), testutil.BootsItem("3006")).Build()
	svc := service.NewRollService(roulette.StaticCatalog{C: cat}, roulette.DefaultRules(), nil)

	pool, err := svc.EligibleItems(domain.FilterPatch{})
	require.NoError(t, err)
	require.Len(t, pool.Items, 1)
	assert.Equal(t, "3031", pool.Items[0].ID)
	assert.Equal(t, testutil.FakeVersion, pool.Version)
	assert.Equal(t, domain.DefaultFilterConfig(), pool.Filters)

	pool, err = svc.EligibleItems(domain.FilterPatch{ExcludeBoots: boolPtr(false)})
	require.NoError(t, err)
	assert.Len(t, pool.Items, 2)
	assert.False(t, pool.Filters.ExcludeBoots)

	_, err = service.NewRollService(roulette.StaticCatalog{}, roulette.DefaultRules(), nil).EligibleItems(domain.FilterPatch{})
	assert.ErrorIs(t, err, domain.ErrCatalogNotReady)
}

// rotatingCatalog hands out a different snapshot on every call.
type rotatingCatalog struct {
	snapshots []*domain.Catalog
	calls     int
}

func (r *rotatingCatalog) Catalog() *domain.Catalog {
	cat := r.snapshots[r.calls%len(r.snapshots)]
	r.calls++
	return cat
}

func TestRollService_EligibleItemsReadsOneSnapshot(t *testing.T) {
	old := testutil.NewCatalogBuilder().WithVersion("14.1.1").
		WithItems(testutil.LegendaryItem("3031")).Build()
	next := testutil.NewCatalogBuilder().WithVersion("14.2.1").
		WithItems(testutil.LegendaryItem("6672"), testutil.LegendaryItem("6673")).Build()
	source := &rotatingCatalog{snapshots: []*domain.Catalog{old, next}}
	svc := service.NewRollService(source, roulette.DefaultRules(), nil)

	pool, err := svc.EligibleItems(domain.FilterPatch{})
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, "14.1.1", pool.Version)
	require.Len(t, pool.Items, 1)
	assert.Equal(t, "14.1.1", pool.Items[0].Version)
}
