package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dom/league-roulette/internal/api/handlers"
	"github.com/dom/league-roulette/internal/api/middleware"
	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
	"github.com/dom/league-roulette/internal/service"
	"github.com/dom/league-roulette/internal/testutil"
)

func TestCatalogHandler_Status(t *testing.T) {
	tests := []struct {
		name          string
		opts          []testutil.ServerOption
		expectedState service.CatalogState
		expectVersion string
	}{
		{
			name:          "loaded",
			expectedState: service.CatalogReady,
			expectVersion: testutil.FakeVersion,
		},
		{
			name:          "not loaded yet",
			opts:          []testutil.ServerOption{testutil.WithoutCatalog()},
			expectedState: service.CatalogLoading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testutil.NewTestServer(t, tt.opts...)

			resp, err := http.Get(ts.APIURL("/catalog/status"))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, http.StatusOK)

			var status service.CatalogStatus
			testutil.AssertJSONResponse(t, resp, &status)
			assert.Equal(t, tt.expectedState, status.State)
			assert.Equal(t, tt.expectVersion, status.Version)
			assert.False(t, status.Stale)
		})
	}
}

func TestCatalogHandler_Champions(t *testing.T) {
	t.Run("returns every champion", func(t *testing.T) {
		ts := testutil.NewTestServer(t)

		resp, err := http.Get(ts.APIURL("/champions"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result handlers.ChampionsResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, testutil.FakeVersion, result.Version)
		require.Len(t, result.Champions, len(testutil.FakeChampionIDs))
		for i, c := range result.Champions {
			assert.Equal(t, testutil.FakeChampionIDs[i], c.ID)
			assert.Contains(t, c.Image.URL, "/cdn/"+testutil.FakeVersion+"/img/champion/")
		}
	})

	t.Run("catalog not loaded", func(t *testing.T) {
		ts := testutil.NewTestServer(t, testutil.WithoutCatalog())

		resp, err := http.Get(ts.APIURL("/champions"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusServiceUnavailable, "not loaded")
	})
}

func TestCatalogHandler_Items(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		checkResponse  func(*testing.T, handlers.ItemsResponse)
	}{
		{
			name:           "default filters",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, result handlers.ItemsResponse) {
				ids := make([]string, len(result.Items))
				for i, it := range result.Items {
					ids[i] = it.ID
				}
				assert.Equal(t, testutil.FakeEligibleItemIDs, ids)
				assert.Equal(t, domain.DefaultFilterConfig(), result.Filters)
			},
		},
		{
			name:           "components allowed",
			query:          "?onlyCompletedLegendary=false",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, result handlers.ItemsResponse) {
				// long sword and the champion-bound spear join; boots stay out
				assert.Len(t, result.Items, len(testutil.FakeEligibleItemIDs)+2)
				for _, it := range result.Items {
					assert.NotEqual(t, "3006", it.ID)
				}
				assert.False(t, result.Filters.OnlyCompletedLegendary)
				assert.True(t, result.Filters.ExcludeBoots)
			},
		},
		{
			name:           "every filter off",
			query:          "?onlySR=false&excludeTrinket=false&excludeConsumable=false&excludeBoots=false&onlyCompletedLegendary=false&excludeJungleStarter=false",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, result handlers.ItemsResponse) {
				// the zero-cost ward is never eligible
				assert.Len(t, result.Items, 13)
			},
		},
		{
			name:           "malformed toggle",
			query:          "?onlySR=maybe",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.APIURL("/items" + tt.query))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)

			if tt.checkResponse != nil {
				var result handlers.ItemsResponse
				testutil.AssertJSONResponse(t, resp, &result)
				tt.checkResponse(t, result)
			}
		})
	}
}

func TestCatalogHandler_Keystones(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/keystones"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result handlers.KeystonesResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Len(t, result.Keystones, 7)
	for _, k := range result.Keystones {
		assert.NotEmpty(t, k.Tree)
		assert.Contains(t, k.Icon, "/cdn/img/perk-images/")
	}
}

func TestCatalogHandler_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		opts           []testutil.ServerOption
		path           string
		expectedStatus int
		expectID       string
		expectName     string
	}{
		{
			name:           "champion",
			path:           "/champions/" + testutil.FakeChampionIDs[0],
			expectedStatus: http.StatusOK,
			expectID:       testutil.FakeChampionIDs[0],
		},
		{
			name:           "unknown champion",
			path:           "/champions/Teemo2",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "eligible item",
			path:           "/items/3031",
			expectedStatus: http.StatusOK,
			expectID:       "3031",
			expectName:     "Infinity Edge",
		},
		{
			name:           "filtered item is still found",
			path:           "/items/3006",
			expectedStatus: http.StatusOK,
			expectID:       "3006",
			expectName:     "Berserker's Greaves",
		},
		{
			name:           "unknown item",
			path:           "/items/9999",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "champion before load",
			opts:           []testutil.ServerOption{testutil.WithoutCatalog()},
			path:           "/champions/" + testutil.FakeChampionIDs[0],
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "item before load",
			opts:           []testutil.ServerOption{testutil.WithoutCatalog()},
			path:           "/items/3031",
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testutil.NewTestServer(t, tt.opts...)

			resp, err := http.Get(ts.APIURL(tt.path))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			}
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Equal(t, tt.expectID, result.ID)
			if tt.expectName != "" {
				assert.Equal(t, tt.expectName, result.Name)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.WithoutCatalog())

	resp, err := http.Get(ts.BaseURL() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
}

func TestCatalogHandler_RolesAndSuffixes(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.WithoutCatalog())

	t.Run("roles", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/roles"))
		require.NoError(t, err)
		defer resp.Body.Close()

		var result handlers.RolesResponse
		testutil.AssertJSONResponse(t, resp, &result)
		require.Len(t, result.Roles, 5)
		assert.Equal(t, domain.RoleTop, result.Roles[0].Role)
		assert.Equal(t, "Bot (ADC)", result.Roles[3].Label)
	})

	t.Run("suffixes", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/suffixes"))
		require.NoError(t, err)
		defer resp.Body.Close()

		var result handlers.SuffixesResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, domain.DefaultSuffixes(), result.Suffixes)
	})
}

func TestCatalogHandler_Sync(t *testing.T) {
	ts := testutil.NewTestServer(t)

	adminToken, err := middleware.IssueAdminToken(testutil.TestAdminSecret, "tests", time.Hour)
	require.NoError(t, err)
	otherToken, err := middleware.IssueAdminToken("some-other-secret", "tests", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		token          string
		down           bool
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name:           "missing token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token signed with another secret",
			token:          otherToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "successful sync",
			token:          adminToken,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var status service.CatalogStatus
				testutil.AssertJSONResponse(t, resp, &status)
				assert.Equal(t, service.CatalogReady, status.State)
				assert.False(t, status.Stale)
				assert.Equal(t, len(testutil.FakeChampionIDs), status.Champions)
			},
		},
		{
			name:           "upstream down keeps the catalog",
			token:          adminToken,
			down:           true,
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DataDragon.SetDown(tt.down)
			defer ts.DataDragon.SetDown(false)

			req, err := http.NewRequest(http.MethodPost, ts.APIURL("/catalog/sync"), nil)
			require.NoError(t, err)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}

	status := ts.Services.Catalog.Status()
	assert.Equal(t, service.CatalogReady, status.State)
	assert.True(t, status.Stale)
	assert.NotNil(t, ts.Services.Catalog.Catalog())
}

func TestCatalogHandler_CustomRules(t *testing.T) {
	rules := roulette.DefaultRules()
	rules.Suffixes = []string{"ござる", "にゃ"}
	rules.LegendaryMinGold = 3300

	ts := testutil.NewTestServer(t, testutil.WithRules(rules))

	resp, err := http.Get(ts.APIURL("/suffixes"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var suffixes handlers.SuffixesResponse
	testutil.AssertJSONResponse(t, resp, &suffixes)
	assert.Equal(t, rules.Suffixes, suffixes.Suffixes)

	itemsResp, err := http.Get(ts.APIURL("/items"))
	require.NoError(t, err)
	defer itemsResp.Body.Close()

	var items handlers.ItemsResponse
	testutil.AssertJSONResponse(t, itemsResp, &items)
	ids := make([]string, len(items.Items))
	for i, it := range items.Items {
		ids[i] = it.ID
	}
	// only Infinity Edge, Trinity Force and Deathcap cost 3300 or more
	assert.Equal(t, []string{"3031", "3078", "3089"}, ids)
}
