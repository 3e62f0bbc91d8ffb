package homes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	homesvc "homeboard-backend/internal/application/homes"
	"homeboard-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeDeleter) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeDeleter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}

func setupHomesTest(t *testing.T) (*fiber.App, *gorm.DB, *fakeDeleter) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Home{}))

	deleter := &fakeDeleter{}
	h := &Handlers{Service: &homesvc.Service{DB: db, Media: deleter}}

	app := fiber.New()
	app.Post("/api/homes", h.CreateHome)
	app.Get("/api/homes", h.GetAllHomes)
	app.Get("/api/homes/:id", h.GetHomeByID)
	app.Delete("/api/homes/:id", h.DeleteHome)
	return app, db, deleter
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateHome_RoundTrip(t *testing.T) {
	app, _, _ := setupHomesTest(t)

	rec := postJSON(t, app, "/api/homes", map[string]interface{}{
		"title":      "Lakeview Cottage",
		"address":    "12 Shore Rd",
		"price":      450000,
		"deposit":    20000,
		"size":       "2 bed, 1 bath",
		"listingUrl": "https://example.com/lakeview",
		"notes":      "quiet street",
		"mediaFiles": []map[string]string{
			{"fileName": "front.jpg", "googleDriveId": "obj-1.jpg", "mimeType": "image/jpeg"},
		},
	})
	require.Equal(t, 200, rec.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.NotEmpty(t, created["createdAt"])

	req := httptest.NewRequest("GET", "/api/homes/"+id, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var fetched map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, "Lakeview Cottage", fetched["title"])
	assert.Equal(t, "12 Shore Rd", fetched["address"])
	assert.Equal(t, float64(450000), fetched["price"])
	assert.Equal(t, float64(20000), fetched["deposit"])
	assert.Equal(t, "2 bed, 1 bath", fetched["size"])
	assert.Equal(t, "https://example.com/lakeview", fetched["listingUrl"])
	assert.Equal(t, "quiet street", fetched["notes"])
	assert.Equal(t, "/api/files/obj-1.jpg", fetched["image"])
}

func TestCreateHome_MissingTitle(t *testing.T) {
	app, _, _ := setupHomesTest(t)
	rec := postJSON(t, app, "/api/homes", map[string]interface{}{
		"address": "12 Shore Rd",
		"price":   450000,
		"size":    "2 bed, 1 bath",
	})
	assert.Equal(t, 400, rec.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "Missing required field: title", result["msg"])
}

func TestCreateHome_NegativePrice(t *testing.T) {
	app, _, _ := setupHomesTest(t)
	rec := postJSON(t, app, "/api/homes", map[string]interface{}{
		"title":   "Lakeview Cottage",
		"address": "12 Shore Rd",
		"price":   -1,
		"size":    "2 bed, 1 bath",
	})
	assert.Equal(t, 400, rec.StatusCode)
}

func TestGetAllHomes_OrderedByCreationDesc(t *testing.T) {
	app, db, _ := setupHomesTest(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, db.Create(&domain.Home{
			Title:     title,
			Address:   "addr",
			Price:     100,
			Size:      "1 bed",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	req := httptest.NewRequest("GET", "/api/homes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var homes []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&homes))
	require.Len(t, homes, 3)
	assert.Equal(t, "newest", homes[0]["title"])
	assert.Equal(t, "middle", homes[1]["title"])
	assert.Equal(t, "oldest", homes[2]["title"])
}

func TestGetHomeByID_MalformedID(t *testing.T) {
	app, _, _ := setupHomesTest(t)
	req := httptest.NewRequest("GET", "/api/homes/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteHome_CascadesToMedia(t *testing.T) {
	app, db, deleter := setupHomesTest(t)

	home := &domain.Home{
		Title:   "with media",
		Address: "addr",
		Price:   100,
		Size:    "1 bed",
		MediaFiles: datatypes.NewJSONSlice([]domain.MediaFile{
			{FileName: "a.jpg", DriveID: "obj-a", MimeType: "image/jpeg"},
			{FileName: "b.jpg", DriveID: "obj-b", MimeType: "image/jpeg"},
			{FileName: "c.mp4", DriveID: "obj-c", MimeType: "video/mp4"},
		}),
	}
	require.NoError(t, db.Create(home).Error)

	req := httptest.NewRequest("DELETE", "/api/homes/"+home.HomeID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, 3, deleter.count())
	assert.ElementsMatch(t, []string{"obj-a", "obj-b", "obj-c"}, deleter.deleted)

	var count int64
	require.NoError(t, db.Model(&domain.Home{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Second delete: 404, gateway deletions not repeated.
	req = httptest.NewRequest("DELETE", "/api/homes/"+home.HomeID.String(), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, 3, deleter.count())
}

func TestDeleteHome_MediaFailureStillDeletesRecord(t *testing.T) {
	app, db, deleter := setupHomesTest(t)
	deleter.err = errors.New("gateway down")

	home := &domain.Home{
		Title:   "doomed",
		Address: "addr",
		Price:   100,
		Size:    "1 bed",
		MediaFiles: datatypes.NewJSONSlice([]domain.MediaFile{
			{FileName: "a.jpg", DriveID: "obj-a", MimeType: "image/jpeg"},
		}),
	}
	require.NoError(t, db.Create(home).Error)

	req := httptest.NewRequest("DELETE", "/api/homes/"+home.HomeID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&domain.Home{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteHome_UnknownID(t *testing.T) {
	app, _, deleter := setupHomesTest(t)
	req := httptest.NewRequest("DELETE", "/api/homes/7b0d12a0-0a3c-4a8e-9a4e-000000000000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, 0, deleter.count())
}
