package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dreamforge-ai/dreamforge/internal/imagegen"
	"github.com/dreamforge-ai/dreamforge/internal/model"
	"github.com/dreamforge-ai/dreamforge/internal/repository"
	"github.com/dreamforge-ai/dreamforge/internal/styles"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrModelUnavailable    = errors.New("image model unavailable")
	ErrInvalidStyle        = errors.New("invalid style")

	// ErrImageNotFound deliberately covers both "does not exist" and "owned
	// by someone else" so callers cannot probe for foreign image ids.
	ErrImageNotFound = errors.New("image not found or unauthorized")
)

// ImageService is the credit-gated generation pipeline: generate, persist,
// style on demand, list, delete, download.
type ImageService struct {
	imageRepository repository.ImageRepository
	userRepository  repository.UserRepository
	provider        imagegen.Provider // nil when no provider is configured
}

func NewImageService(imageRepository repository.ImageRepository, userRepository repository.UserRepository, provider imagegen.Provider) *ImageService {
	return &ImageService{
		imageRepository: imageRepository,
		userRepository:  userRepository,
		provider:        provider,
	}
}

// GalleryItem is one displayable entry: either an original or a styled render.
type GalleryItem struct {
	ID     string
	Prompt string
	Type   string
	Data   []byte
}

// Generate creates an image from the prompt, persists it and charges exactly
// one credit. The credit balance is only touched after the record exists; a
// failed generation never charges. The decrement itself is conditional in the
// store, so concurrent generations against a balance of k succeed at most k
// times. When the race is lost after the record was written, the record is
// rolled back.
func (s *ImageService) Generate(ctx context.Context, user *model.User, prompt string) (*model.Image, error) {
	if user.Credits <= 0 {
		return nil, ErrInsufficientCredits
	}
	if s.provider == nil {
		return nil, ErrModelUnavailable
	}

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	// Re-encode canonically as PNG regardless of what the provider returned
	decoded, err := styles.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	original, err := styles.EncodePNG(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generated image: %w", err)
	}

	image := &model.Image{
		ID:         uuid.New().String(),
		OwnerEmail: user.Email,
		Prompt:     prompt,
		Original:   original,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.imageRepository.Create(image)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	err = s.userRepository.DeductCredit(user.ID)
	if err != nil {
		// Lost a concurrent race on the last credit: remove the record
		// again so the failed attempt leaves no trace.
		deleteErr := s.imageRepository.Delete(user.Email, image.ID)
		if deleteErr != nil {
			slog.Error("failed to roll back uncharged image", "error", deleteErr, "image_id", image.ID)
		}
		if errors.Is(err, repository.ErrNoCredits) {
			return nil, ErrInsufficientCredits
		}
		return nil, fmt.Errorf("failed to deduct credit: %w", err)
	}

	return image, nil
}

// ApplyStyle renders the named style from the original image and stores it,
// replacing any previous render for that style. Styling is free and
// idempotent for a stable filter implementation.
func (s *ImageService) ApplyStyle(ctx context.Context, user *model.User, imageID, styleName string) ([]byte, error) {
	image, err := s.imageRepository.ByID(user.Email, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	filter, ok := styles.Lookup(styleName)
	if !ok {
		return nil, ErrInvalidStyle
	}

	decoded, err := styles.Decode(image.Original)
	if err != nil {
		return nil, fmt.Errorf("failed to decode original: %w", err)
	}

	styled, err := styles.EncodePNG(filter(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to encode styled image: %w", err)
	}

	err = s.imageRepository.SetStyle(&model.StyleRender{
		ImageID:   image.ID,
		Style:     styleName,
		Data:      styled,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store styled image: %w", err)
	}

	return styled, nil
}

// Gallery returns one item per owned image plus one per styled render. For a
// given image the original always precedes its renders.
func (s *ImageService) Gallery(ctx context.Context, user *model.User) ([]GalleryItem, error) {
	images, err := s.imageRepository.ByOwner(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var items []GalleryItem
	for _, image := range images {
		items = append(items, GalleryItem{
			ID:     image.ID,
			Prompt: image.Prompt,
			Type:   "original",
			Data:   image.Original,
		})
		for _, render := range image.Styles {
			items = append(items, GalleryItem{
				ID:     fmt.Sprintf("%s_%s", image.ID, render.Style),
				Prompt: fmt.Sprintf("%s (%s)", image.Prompt, render.Style),
				Type:   render.Style,
				Data:   render.Data,
			})
		}
	}

	return items, nil
}

// Delete removes an owned image together with its styled renders.
func (s *ImageService) Delete(ctx context.Context, user *model.User, imageID string) error {
	err := s.imageRepository.Delete(user.Email, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// Download returns the original bytes exactly as stored at generation time.
func (s *ImageService) Download(ctx context.Context, user *model.User, imageID string) ([]byte, error) {
	data, err := s.imageRepository.Original(user.Email, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return data, nil
}
