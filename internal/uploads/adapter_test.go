package uploads_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homepro-hq/marketplace-backend/internal/intake/domain"
	"github.com/homepro-hq/marketplace-backend/internal/uploads"
)

// fileServer fakes the external file-storage service. It records every request
// method and hands out sequential IDs.
type fileServer struct {
	mu      sync.Mutex
	nextID  int64
	methods []string
	names   []string
}

func (fs *fileServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.methods = append(fs.methods, r.Method)
		fs.mu.Unlock()

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "project_image", r.FormValue("purpose"))
		assert.Equal(t, "false", r.FormValue("is_public"))
		assert.Equal(t, "true", r.FormValue("is_temp"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		fs.mu.Lock()
		fs.nextID++
		id := fs.nextID
		fs.names = append(fs.names, header.Filename)
		fs.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id": %d, "file": "https://files.example/%d.jpg", "original_filename": %q}`, id, id, header.Filename)
	}
}

func TestUploadBatch_Success(t *testing.T) {
	fs := &fileServer{}
	server := httptest.NewServer(fs.handler(t))
	defer server.Close()

	adapter := uploads.NewAdapter(uploads.NewClient(server.URL, 100, 100))

	out, err := adapter.UploadBatch(context.Background(), []uploads.File{
		{Name: "kitchen.jpg", Content: strings.NewReader("jpeg-a")},
		{Name: "bath.jpg", Content: strings.NewReader("jpeg-b")},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	// results keep input order regardless of completion order
	assert.Equal(t, "kitchen.jpg", out[0].OriginalFilename)
	assert.Equal(t, "bath.jpg", out[1].OriginalFilename)
	for _, f := range out {
		assert.NotZero(t, f.ID)
		assert.NotEmpty(t, f.RemoteURL)
	}
}

func TestUploadBatch_SingleFailureAbortsBatch(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)

		if header.Filename == "broken.jpg" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail": "storage unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id": %d, "file": "https://files.example/%d.jpg", "original_filename": %q}`, n, n, header.Filename)
	}))
	defer server.Close()

	adapter := uploads.NewAdapter(uploads.NewClient(server.URL, 100, 100))

	out, err := adapter.UploadBatch(context.Background(), []uploads.File{
		{Name: "ok.jpg", Content: strings.NewReader("jpeg-a")},
		{Name: "broken.jpg", Content: strings.NewReader("jpeg-b")},
	})

	assert.Nil(t, out)

	var upErr *domain.UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "broken.jpg", upErr.Filename)
	assert.Contains(t, err.Error(), "storage unavailable")
}

func TestRemoveImage_NoRemoteDeletion(t *testing.T) {
	fs := &fileServer{}
	server := httptest.NewServer(fs.handler(t))
	defer server.Close()

	adapter := uploads.NewAdapter(uploads.NewClient(server.URL, 100, 100))

	out, err := adapter.UploadBatch(context.Background(), []uploads.File{
		{Name: "a.jpg", Content: strings.NewReader("jpeg-a")},
		{Name: "b.jpg", Content: strings.NewReader("jpeg-b")},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	draft := domain.NewDraft("user-1")
	draft.UploadedImages = out

	require.True(t, draft.RemoveImage(out[0].ID))
	require.Len(t, draft.UploadedImages, 1)
	assert.Equal(t, out[1].ID, draft.UploadedImages[0].ID)

	// the file service only ever saw the two uploads, never a deletion
	fs.mu.Lock()
	defer fs.mu.Unlock()
	assert.Equal(t, []string{http.MethodPost, http.MethodPost}, fs.methods)
}

func TestUpload_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := uploads.NewClient(server.URL, 100, 100)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Upload(ctx, "a.jpg", strings.NewReader("jpeg-a"))
	require.Error(t, err)
}
