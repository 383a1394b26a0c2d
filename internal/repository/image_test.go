package repository

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dreamforge-ai/dreamforge/internal/model"
)

func newTestImage(owner string) *model.Image {
	return &model.Image{
		ID:         uuid.New().String(),
		OwnerEmail: owner,
		Prompt:     "a lighthouse at dusk",
		Original:   []byte{0x89, 0x50, 0x4e, 0x47, 1, 2, 3},
		CreatedAt:  time.Now().UTC(),
	}
}

func TestImageCreateAndLookup(t *testing.T) {
	repo := NewImageRepository(testDB(t))

	img := newTestImage("alice@example.com")
	err := repo.Create(img)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.ByID("alice@example.com", img.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Prompt != img.Prompt {
		t.Errorf("prompt = %q", got.Prompt)
	}
	if !bytes.Equal(got.Original, img.Original) {
		t.Error("original bytes differ")
	}
	if len(got.Styles) != 0 {
		t.Errorf("new image has %d styles, want 0", len(got.Styles))
	}
}

func TestImageOwnershipFailsClosed(t *testing.T) {
	repo := NewImageRepository(testDB(t))

	img := newTestImage("alice@example.com")
	err := repo.Create(img)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = repo.ByID("mallory@example.com", img.ID)
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("foreign ByID err = %v, want ErrImageNotFound", err)
	}
	_, err = repo.Original("mallory@example.com", img.ID)
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("foreign Original err = %v, want ErrImageNotFound", err)
	}
	err = repo.Delete("mallory@example.com", img.ID)
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("foreign Delete err = %v, want ErrImageNotFound", err)
	}

	// Record must still be there for the owner
	_, err = repo.ByID("alice@example.com", img.ID)
	if err != nil {
		t.Fatalf("owner lookup after foreign delete failed: %v", err)
	}
}

func TestSetStyleUpserts(t *testing.T) {
	repo := NewImageRepository(testDB(t))

	img := newTestImage("alice@example.com")
	err := repo.Create(img)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first := &model.StyleRender{ImageID: img.ID, Style: "cartoon", Data: []byte("v1"), UpdatedAt: time.Now().UTC()}
	err = repo.SetStyle(first)
	if err != nil {
		t.Fatalf("SetStyle failed: %v", err)
	}

	second := &model.StyleRender{ImageID: img.ID, Style: "cartoon", Data: []byte("v2"), UpdatedAt: time.Now().UTC()}
	err = repo.SetStyle(second)
	if err != nil {
		t.Fatalf("SetStyle overwrite failed: %v", err)
	}

	got, err := repo.ByID("alice@example.com", img.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if len(got.Styles) != 1 {
		t.Fatalf("styles count = %d, want 1 (overwrite, not append)", len(got.Styles))
	}
	if !bytes.Equal(got.Styles[0].Data, []byte("v2")) {
		t.Errorf("style data = %q, want v2", got.Styles[0].Data)
	}
}

func TestByOwnerListsOrderedWithStyles(t *testing.T) {
	repo := NewImageRepository(testDB(t))

	first := newTestImage("alice@example.com")
	first.CreatedAt = time.Now().UTC().Add(-time.Minute)
	second := newTestImage("alice@example.com")
	other := newTestImage("bob@example.com")

	for _, img := range []*model.Image{first, second, other} {
		err := repo.Create(img)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	err := repo.SetStyle(&model.StyleRender{ImageID: first.ID, Style: "sketch", Data: []byte("s"), UpdatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("SetStyle failed: %v", err)
	}

	images, err := repo.ByOwner("alice@example.com")
	if err != nil {
		t.Fatalf("ByOwner failed: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("ByOwner returned %d images, want 2", len(images))
	}
	if images[0].ID != first.ID {
		t.Error("images are not ordered by creation time")
	}
	if len(images[0].Styles) != 1 || images[0].Styles[0].Style != "sketch" {
		t.Errorf("styles not loaded: %+v", images[0].Styles)
	}
}

func TestDeleteRemovesStylesWithParent(t *testing.T) {
	database := testDB(t)
	repo := NewImageRepository(database)

	img := newTestImage("alice@example.com")
	err := repo.Create(img)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err = repo.SetStyle(&model.StyleRender{ImageID: img.ID, Style: "cartoon", Data: []byte("c"), UpdatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("SetStyle failed: %v", err)
	}

	err = repo.Delete("alice@example.com", img.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = repo.ByID("alice@example.com", img.ID)
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("ByID after delete err = %v, want ErrImageNotFound", err)
	}

	var count int
	err = database.Get(&count, "SELECT COUNT(*) FROM image_styles WHERE image_id = $1", img.ID)
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("%d style rows survived the delete", count)
	}
}
