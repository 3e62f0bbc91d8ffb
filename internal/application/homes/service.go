package homes

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"homeboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MediaDeleter is the one gateway operation the homes service needs, for the
// deletion cascade.
type MediaDeleter interface {
	Delete(ctx context.Context, id string) error
}

// Service implements home CRUD over the DB plus the media deletion cascade.
type Service struct {
	DB    *gorm.DB
	Media MediaDeleter
}

// CreateHomeInput carries the fields of a new home. Media files were already
// uploaded by the client; their references are attached here unverified.
type CreateHomeInput struct {
	Title         string
	Address       string
	Price         float64
	Deposit       *float64
	Size          string
	ListingURL    *string
	GoogleMapsURL *string
	Notes         *string
	MediaFiles    []domain.MediaFile
}

func (s *Service) Create(ctx context.Context, in CreateHomeInput) (*domain.Home, error) {
	home := &domain.Home{
		Title:         in.Title,
		Address:       in.Address,
		Price:         in.Price,
		Deposit:       in.Deposit,
		Size:          in.Size,
		ListingURL:    in.ListingURL,
		GoogleMapsURL: in.GoogleMapsURL,
		Notes:         in.Notes,
		MediaFiles:    datatypes.NewJSONSlice(in.MediaFiles),
	}
	if err := s.DB.WithContext(ctx).Create(home).Error; err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}
	return home, nil
}

// GetAll returns every home, most recent first.
func (s *Service) GetAll(ctx context.Context) ([]domain.Home, error) {
	var homes []domain.Home
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&homes).Error; err != nil {
		return nil, fmt.Errorf("fetch homes: %w", err)
	}
	return homes, nil
}

// GetByID returns one home. A malformed id maps to not-found, like the
// original API's CastError handling.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Home, error) {
	homeID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrHomeNotFound
	}
	var home domain.Home
	if err := s.DB.WithContext(ctx).Where("home_id = ?", homeID).First(&home).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("fetch home %s: %w", id, err)
	}
	return &home, nil
}

// Delete removes a home and cascades to its media objects. Gateway deletions
// run concurrently and are best-effort: an individual failure is logged and
// never blocks the others or the record deletion, which can leave orphaned
// objects in the external store.
func (s *Service) Delete(ctx context.Context, id string) error {
	home, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, file := range home.MediaFiles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Media.Delete(ctx, file.DriveID); err != nil {
				log.Error().Str("file_id", file.DriveID).Err(err).Msg("Failed to delete media object")
			}
		}()
	}
	wg.Wait()

	if err := s.DB.WithContext(ctx).Where("home_id = ?", home.HomeID).Delete(&domain.Home{}).Error; err != nil {
		return fmt.Errorf("delete home %s: %w", id, err)
	}
	return nil
}
