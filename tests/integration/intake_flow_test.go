package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homepro-hq/marketplace-backend/internal/bootstrap"
	catdomain "github.com/homepro-hq/marketplace-backend/internal/categories/domain"
	catservice "github.com/homepro-hq/marketplace-backend/internal/categories/service"
	"github.com/homepro-hq/marketplace-backend/internal/projects"
	"github.com/homepro-hq/marketplace-backend/internal/uploads"
)

type staticCatalogue []catdomain.Category

func (s staticCatalogue) List(_ context.Context) ([]catdomain.Category, error) {
	return s, nil
}

type wizardEnv struct {
	router        *gin.Engine
	creationCalls *int64
	lastPayload   *projects.CreatePayload
}

// setupWizard wires the full router against fake upstreams: miniredis for
// drafts, an httptest file service and an httptest creation service. No
// Postgres is involved, matching how the service degrades without a DB.
func setupWizard(t *testing.T) *wizardEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var uploadID int64
	fileService := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		id := atomic.AddInt64(&uploadID, 1)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id": %d, "file": "https://files.example/%d.jpg", "original_filename": %q}`, id, id, header.Filename)
	}))
	t.Cleanup(fileService.Close)

	env := &wizardEnv{creationCalls: new(int64), lastPayload: &projects.CreatePayload{}}

	creationService := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(env.creationCalls, 1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(env.lastPayload))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 777}`))
	}))
	t.Cleanup(creationService.Close)

	resolver := catservice.NewResolver(staticCatalogue{
		{ID: 7, Name: "Kitchen Remodeling", Slug: "kitchen-remodeling"},
	}, nil)

	env.router = bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "marketplace-intake",
		Version:     "test",
		Redis:       rdb,
		Categories:  resolver,
		Files:       uploads.NewClient(fileService.URL, 100, 100),
		Creator:     projects.NewClient(creationService.URL),
		DraftTTL:    time.Hour,
	})
	return env
}

func (e *wizardEnv) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("X-User-Id", "client-42")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *wizardEnv) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	return e.do(t, method, path, &buf, "application/json")
}

func decodeDraft(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		OK    bool           `json:"ok"`
		Draft map[string]any `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	return resp.Draft
}

func TestWizardFlow_EndToEnd(t *testing.T) {
	env := setupWizard(t)

	// step 1: create an empty draft
	w := env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decodeDraft(t, w)
	draftID := draft["id"].(string)
	assert.Equal(t, float64(1), draft["step"])
	assert.Equal(t, "normal", draft["urgency"])

	// fill in the project details
	w = env.doJSON(t, http.MethodPatch, "/api/v1/intake/drafts/"+draftID, map[string]any{
		"title":          "Remodel the kitchen",
		"category":       "Kitchen Remodeling",
		"description":    "Full remodel including new cabinets and countertops.",
		"location":       "Austin, TX",
		"budget_label":   "$1,000 - $2,500",
		"timeline_label": "Within a month",
		"skills":         []string{"carpentry"},
		"required_roles": []string{"home-pro"},
		"urgency":        "urgent",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// advance to the images step
	w = env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts/"+draftID+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeDraft(t, w)["step"])

	// upload a photo batch
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("images", "kitchen.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w = env.do(t, http.MethodPost, "/api/v1/intake/drafts/"+draftID+"/images", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code)
	images := decodeDraft(t, w)["uploaded_images"].([]any)
	require.Len(t, images, 1)

	// submit from the review step
	w = env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts/"+draftID+"/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var submitResp struct {
		OK        bool  `json:"ok"`
		ProjectID int64 `json:"project_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitResp))
	assert.True(t, submitResp.OK)
	assert.Equal(t, int64(777), submitResp.ProjectID)

	require.Equal(t, int64(1), atomic.LoadInt64(env.creationCalls))
	assert.Equal(t, int64(7), env.lastPayload.Category)
	assert.Equal(t, "estimate", env.lastPayload.BudgetType)
	require.NotNil(t, env.lastPayload.BudgetMin)
	assert.Equal(t, 1000, *env.lastPayload.BudgetMin)
	require.NotNil(t, env.lastPayload.BudgetMax)
	assert.Equal(t, 2500, *env.lastPayload.BudgetMax)
	assert.Equal(t, []int64{1}, env.lastPayload.ImageIDs)
	assert.Equal(t, "urgent", env.lastPayload.Urgency)
}

func TestWizardFlow_SubmitValidationBeforeNetwork(t *testing.T) {
	env := setupWizard(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	draftID := decodeDraft(t, w)["id"].(string)

	w = env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts/"+draftID+"/submit", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required fields")
	assert.Equal(t, int64(0), atomic.LoadInt64(env.creationCalls))
}

func TestWizardFlow_ForeignDraftReadsAsNotFound(t *testing.T) {
	env := setupWizard(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts", nil)
	draftID := decodeDraft(t, w)["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/intake/drafts/"+draftID, nil)
	req.Header.Set("X-User-Id", "someone-else")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardFlow_StepClampsOverHTTP(t *testing.T) {
	env := setupWizard(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts", nil)
	draftID := decodeDraft(t, w)["id"].(string)

	w = env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts/"+draftID+"/retreat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeDraft(t, w)["step"])

	for i := 0; i < 6; i++ {
		w = env.doJSON(t, http.MethodPost, "/api/v1/intake/drafts/"+draftID+"/advance", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, float64(4), decodeDraft(t, w)["step"])
}

func TestWizardFlow_Categories(t *testing.T) {
	env := setupWizard(t)

	w := env.doJSON(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kitchen Remodeling")
}
