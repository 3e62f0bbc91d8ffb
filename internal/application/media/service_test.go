package media

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"homeboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu          sync.Mutex
	uploaded    []string
	streamCalls int
	failOn      string
	delay       map[string]time.Duration
}

func (f *fakeStore) Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	if d, ok := f.delay[originalName]; ok {
		time.Sleep(d)
	}
	if originalName == f.failOn {
		return "", errors.New("store rejected upload")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, originalName)
	return "id-" + originalName, nil
}

func (f *fakeStore) Metadata(ctx context.Context, id string) (domain.FileInfo, error) {
	return domain.FileInfo{}, domain.ErrFileNotFound
}

func (f *fakeStore) Stream(ctx context.Context, id string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.streamCalls++
	return nil, domain.ErrFileNotFound
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	return nil
}

func TestUploadBatch_Empty(t *testing.T) {
	svc := &Service{Store: &fakeStore{}}
	_, err := svc.UploadBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoFiles)
}

func TestUploadBatch_PreservesSubmissionOrder(t *testing.T) {
	// First file is slowest: completion order is the reverse of submission
	// order, but the result must still match submission order.
	store := &fakeStore{delay: map[string]time.Duration{
		"a.jpg": 30 * time.Millisecond,
		"b.jpg": 15 * time.Millisecond,
		"c.jpg": 0,
	}}
	svc := &Service{Store: store}

	refs, err := svc.UploadBatch(context.Background(), []UploadInput{
		{FileName: "a.jpg", MimeType: "image/jpeg", Data: []byte("a")},
		{FileName: "b.jpg", MimeType: "image/jpeg", Data: []byte("b")},
		{FileName: "c.jpg", MimeType: "image/jpeg", Data: []byte("c")},
	})
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "a.jpg", refs[0].FileName)
	assert.Equal(t, "id-a.jpg", refs[0].DriveID)
	assert.Equal(t, "b.jpg", refs[1].FileName)
	assert.Equal(t, "c.jpg", refs[2].FileName)
}

func TestUploadBatch_AllOrNothing(t *testing.T) {
	store := &fakeStore{failOn: "bad.jpg"}
	svc := &Service{Store: store}

	refs, err := svc.UploadBatch(context.Background(), []UploadInput{
		{FileName: "good.jpg", MimeType: "image/jpeg", Data: []byte("g")},
		{FileName: "bad.jpg", MimeType: "image/jpeg", Data: []byte("b")},
	})
	require.Error(t, err)
	assert.Nil(t, refs)
}

func TestFetch_NotFoundSkipsStream(t *testing.T) {
	store := &fakeStore{}
	svc := &Service{Store: store}

	_, _, err := svc.Fetch(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Equal(t, 0, store.streamCalls)
}
