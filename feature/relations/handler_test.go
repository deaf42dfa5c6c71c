package relations

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"content-relations/core/reconcile"
	"content-relations/core/storage"
	"content-relations/core/storage/mocks"
	"content-relations/feature/relations/editors"
	"content-relations/feature/relations/store"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, f *fixture, client *mocks.Client) *fiber.App {
	t.Helper()
	feature := NewFeature(f.db, editors.Default(), client, storage.Config{Bucket: "relations"}, reconcile.Config{}, zap.NewNop())
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleReconcile(t *testing.T) {
	f := newFixture(t)
	app := newTestApp(t, f, new(mocks.Client))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Valid", `{"kind":"document","event":"saved","ids":[` + strconv.Itoa(f.page.ID) + `]}`, fiber.StatusOK},
		{"Bad JSON", `{"kind":`, fiber.StatusBadRequest},
		{"Unknown kind", `{"kind":"template","event":"saved","ids":[1]}`, fiber.StatusBadRequest},
		{"No ids", `{"kind":"media","event":"saved","ids":[]}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/relations/reconcile", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.status == fiber.StatusOK {
				var body ReconcileResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, 1, body.Entities)
				assert.Equal(t, 2, body.Inserted)
			}
		})
	}
}

func TestHandleGetRelations(t *testing.T) {
	f := newFixture(t)
	app := newTestApp(t, f, new(mocks.Client))

	req := httptest.NewRequest("POST", "/relations/reconcile",
		strings.NewReader(`{"kind":"document","event":"published","ids":[`+strconv.Itoa(f.page.ID)+`]}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/relations/"+strconv.Itoa(f.page.ID)+"?types=umbDocument", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []store.RelationView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, f.other.ID, views[0].ChildID)
	assert.Equal(t, "umbDocument", views[0].RelationTypeAlias)

	resp, err = app.Test(httptest.NewRequest("GET", "/relations/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleExports(t *testing.T) {
	f := newFixture(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "relations").Return(true, nil)
	client.On("PutObject", mock.Anything, "relations", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, ExportPrefix)
	}), mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	client.On("ListObjects", mock.Anything, "relations", mock.Anything).Return(mocks.Listing("exports/relations-20240501T120000.000Z.json"))

	app := newTestApp(t, f, client)

	req := httptest.NewRequest("POST", "/relations/exports", strings.NewReader(`{"parent_ids":[`+strconv.Itoa(f.page.ID)+`]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest("POST", "/relations/exports", strings.NewReader(`{"parent_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/relations/exports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `["exports/relations-20240501T120000.000Z.json"]`, string(body))
}

func TestFeature_DisabledWithoutDatabase(t *testing.T) {
	feature := NewFeature(nil, editors.Default(), nil, storage.Config{}, reconcile.Config{}, nil)
	assert.False(t, feature.IsEnabled())
	assert.Equal(t, "relations", feature.Name())
	assert.NotNil(t, feature.Service())
	assert.NotNil(t, feature.Exporter())
}
