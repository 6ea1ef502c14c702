package uploads

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/homepro-hq/marketplace-backend/internal/intake/domain"
)

// File is one local file handle selected for upload.
type File struct {
	Name    string
	Content io.Reader
}

// Adapter uploads a batch of draft images to the file service.
//
// Files in a batch upload concurrently. The batch is all-or-nothing from the
// caller's view: the first failure cancels files that have not completed and
// is returned as the batch error. Files that already finished are NOT rolled
// back remotely, so a partial failure can leave orphaned remote files.
type Adapter struct {
	client *Client
}

func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// UploadBatch stores all files and returns their references in input order.
func (a *Adapter) UploadBatch(ctx context.Context, files []File) ([]domain.UploadedFile, error) {
	out := make([]domain.UploadedFile, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			result, err := a.client.Upload(gctx, f.Name, f.Content)
			if err != nil {
				return &domain.UploadError{Filename: f.Name, Err: err}
			}
			out[i] = domain.UploadedFile{
				ID:               result.ID,
				RemoteURL:        result.File,
				OriginalFilename: result.OriginalFilename,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
