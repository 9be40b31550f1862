package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/repository/memory"
	repositorymock "github.com/dom/league-roulette/internal/repository/mock"
	"github.com/dom/league-roulette/internal/service"
	servicemock "github.com/dom/league-roulette/internal/service/mock"
	"github.com/dom/league-roulette/internal/testutil"
)

var errUpstream = errors.New("upstream unavailable")

func TestCatalogService_InitialStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewCatalogService(servicemock.NewMockDataSource(ctrl), nil, time.Second)

	assert.Nil(t, svc.Catalog())
	assert.Equal(t, service.CatalogLoading, svc.Status().State)
}

func TestCatalogService_Load(t *testing.T) {
	fresh := testutil.NewCatalogBuilder().WithVersion("14.2.1").Build()
	stored := testutil.NewCatalogBuilder().WithVersion("14.1.1").Build()

	tests := []struct {
		name        string
		seed        *domain.Catalog
		fetch       *domain.Catalog
		fetchErr    error
		wantErr     error
		wantState   service.CatalogState
		wantVersion string
		wantStale   bool
	}{
		{
			name:        "fresh fetch",
			fetch:       fresh,
			wantState:   service.CatalogReady,
			wantVersion: "14.2.1",
		},
		{
			name:        "fetch fails with stored snapshot",
			seed:        stored,
			fetchErr:    errUpstream,
			wantErr:     errUpstream,
			wantState:   service.CatalogReady,
			wantVersion: "14.1.1",
			wantStale:   true,
		},
		{
			name:      "fetch fails with nothing stored",
			fetchErr:  errUpstream,
			wantErr:   errUpstream,
			wantState: service.CatalogFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := servicemock.NewMockDataSource(ctrl)
			repo := memory.NewCatalogRepository()
			ctx := context.Background()

			if tt.seed != nil {
				require.NoError(t, repo.Save(ctx, tt.seed))
			}
			source.EXPECT().Fetch(gomock.Any()).Return(tt.fetch, tt.fetchErr)

			svc := service.NewCatalogService(source, repo, time.Second)
			err := svc.Load(ctx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			status := svc.Status()
			assert.Equal(t, tt.wantState, status.State)
			assert.Equal(t, tt.wantVersion, status.Version)
			assert.Equal(t, tt.wantStale, status.Stale)

			if tt.wantState == service.CatalogFailed {
				assert.Nil(t, svc.Catalog())
				assert.Contains(t, status.Error, "failed to load champion and item data")
				return
			}
			require.NotNil(t, svc.Catalog())
			assert.Equal(t, tt.wantVersion, svc.Catalog().Version)
			assert.Equal(t, len(svc.Catalog().Champions), status.Champions)
		})
	}
}

func TestCatalogService_LoadSavesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)
	repo := memory.NewCatalogRepository()
	cat := testutil.NewCatalogBuilder().Build()

	source.EXPECT().Fetch(gomock.Any()).Return(cat, nil)

	svc := service.NewCatalogService(source, repo, time.Second)
	require.NoError(t, svc.Load(context.Background()))

	saved, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cat, saved)
}

func TestCatalogService_SaveFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)
	repo := repositorymock.NewMockCatalogRepository(ctrl)
	cat := testutil.NewCatalogBuilder().Build()

	source.EXPECT().Fetch(gomock.Any()).Return(cat, nil)
	repo.EXPECT().Save(gomock.Any(), cat).Return(errors.New("disk full"))

	svc := service.NewCatalogService(source, repo, time.Second)

	assert.NoError(t, svc.Load(context.Background()))
	status := svc.Status()
	assert.Equal(t, service.CatalogReady, status.State)
	assert.Contains(t, status.SaveError, "disk full")
}

func TestCatalogService_SyncReportsSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)
	repo := repositorymock.NewMockCatalogRepository(ctrl)
	cat := testutil.NewCatalogBuilder().WithVersion("14.2.1").Build()
	diskFull := errors.New("disk full")

	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any()).Return(cat, nil),
		repo.EXPECT().Save(gomock.Any(), cat).Return(diskFull),
		source.EXPECT().Fetch(gomock.Any()).Return(cat, nil),
		repo.EXPECT().Save(gomock.Any(), cat).Return(nil),
	)

	svc := service.NewCatalogService(source, repo, time.Second)

	err := svc.Sync(context.Background())
	require.ErrorIs(t, err, diskFull)
	assert.Contains(t, err.Error(), "14.2.1")
	assert.NotNil(t, svc.Catalog())

	// A later successful save clears the error.
	require.NoError(t, svc.Sync(context.Background()))
	assert.Empty(t, svc.Status().SaveError)
}

func TestCatalogService_RefreshFailureKeepsCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)
	cat := testutil.NewCatalogBuilder().Build()

	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any()).Return(cat, nil),
		source.EXPECT().Fetch(gomock.Any()).Return(nil, errUpstream),
	)

	svc := service.NewCatalogService(source, nil, time.Second)
	require.NoError(t, svc.Load(context.Background()))

	err := svc.Load(context.Background())

	assert.ErrorIs(t, err, errUpstream)
	assert.Same(t, cat, svc.Catalog())
	status := svc.Status()
	assert.Equal(t, service.CatalogReady, status.State)
	assert.True(t, status.Stale)
	assert.NotEmpty(t, status.Error)
}

func TestCatalogService_StoreErrorFallsThroughToFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)
	repo := repositorymock.NewMockCatalogRepository(ctrl)

	source.EXPECT().Fetch(gomock.Any()).Return(nil, errUpstream)
	repo.EXPECT().Latest(gomock.Any()).Return(nil, errors.New("connection refused"))

	svc := service.NewCatalogService(source, repo, time.Second)

	assert.ErrorIs(t, svc.Load(context.Background()), errUpstream)
	assert.Equal(t, service.CatalogFailed, svc.Status().State)
}

func TestCatalogService_CancelledLoadIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	source.EXPECT().Fetch(gomock.Any()).DoAndReturn(func(context.Context) (*domain.Catalog, error) {
		// The caller goes away while the fetch is in flight.
		cancel()
		return testutil.NewCatalogBuilder().Build(), nil
	})

	svc := service.NewCatalogService(source, memory.NewCatalogRepository(), time.Second)
	err := svc.Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, svc.Catalog())
	assert.Equal(t, service.CatalogLoading, svc.Status().State)
}

func TestCatalogService_SupersededLoadIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)
	older := testutil.NewCatalogBuilder().WithVersion("14.1.1").Build()
	newer := testutil.NewCatalogBuilder().WithVersion("14.2.1").Build()

	svc := service.NewCatalogService(source, nil, time.Second)

	gomock.InOrder(
		source.EXPECT().Fetch(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.Catalog, error) {
			// A second load starts and completes before this one returns.
			require.NoError(t, svc.Load(context.Background()))
			return older, nil
		}),
		source.EXPECT().Fetch(gomock.Any()).Return(newer, nil),
	)

	err := svc.Load(context.Background())

	assert.ErrorIs(t, err, service.ErrLoadSuperseded)
	assert.Equal(t, "14.2.1", svc.Catalog().Version)
	assert.Equal(t, "14.2.1", svc.Status().Version)
}

func TestCatalogService_FetchHasDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := servicemock.NewMockDataSource(ctrl)

	source.EXPECT().Fetch(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.Catalog, error) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	svc := service.NewCatalogService(source, nil, 50*time.Millisecond)
	err := svc.Load(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, service.CatalogFailed, svc.Status().State)
}

func TestCatalogService_AgainstFakeDataDragon(t *testing.T) {
	fake := testutil.NewFakeDataDragon(t)
	repo := memory.NewCatalogRepository()
	svc := service.NewCatalogService(testutil.NewDataDragonClient(fake), repo, 5*time.Second)

	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, testutil.FakeVersion, svc.Status().Version)
	assert.False(t, svc.Status().Stale)

	// The upstream goes away; a reload on a fresh service falls back to the store.
	fake.SetDown(true)
	restarted := service.NewCatalogService(testutil.NewDataDragonClient(fake), repo, 5*time.Second)

	assert.Error(t, restarted.Load(context.Background()))
	status := restarted.Status()
	assert.Equal(t, service.CatalogReady, status.State)
	assert.True(t, status.Stale)
	assert.Equal(t, testutil.FakeVersion, status.Version)
	assert.Len(t, restarted.Catalog().Champions, len(testutil.FakeChampionIDs))
}
