package media

import (
	"context"
	"fmt"
	"io"

	"homeboard-backend/internal/domain"

	"golang.org/x/sync/errgroup"
)

// ObjectStore defines what the media service needs from the external store.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Metadata(ctx context.Context, id string) (domain.FileInfo, error)
	Stream(ctx context.Context, id string) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

// Service orchestrates uploads and retrieval against the object store.
type Service struct {
	Store ObjectStore
}

// UploadInput is one file of an upload batch.
type UploadInput struct {
	FileName string
	MimeType string
	Data     []byte
}

// UploadBatch stores every file concurrently and returns media references in
// submission order. A single failure fails the whole batch; objects stored
// before the failure are not rolled back, so the caller may leave orphans in
// the external store.
func (s *Service) UploadBatch(ctx context.Context, inputs []UploadInput) ([]domain.MediaFile, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrNoFiles
	}

	refs := make([]domain.MediaFile, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			id, err := s.Store.Upload(ctx, in.Data, in.FileName, in.MimeType)
			if err != nil {
				return fmt.Errorf("upload %s: %w", in.FileName, err)
			}
			refs[i] = domain.MediaFile{
				FileName: in.FileName,
				DriveID:  id,
				MimeType: in.MimeType,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// Fetch resolves metadata first, then opens the byte stream. The not-found
// case always surfaces here, before any bytes are sent; stream errors after
// that are the caller's to handle mid-transfer.
func (s *Service) Fetch(ctx context.Context, id string) (domain.FileInfo, io.ReadCloser, error) {
	info, err := s.Store.Metadata(ctx, id)
	if err != nil {
		return domain.FileInfo{}, nil, err
	}
	rc, err := s.Store.Stream(ctx, id)
	if err != nil {
		return domain.FileInfo{}, nil, err
	}
	return info, rc, nil
}
