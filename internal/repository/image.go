package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/dreamforge-ai/dreamforge/internal/model"
)

var (
	// ErrImageNotFound covers both a missing record and a record owned by
	// someone else. Queries are owner-scoped so the two cases are
	// indistinguishable, which keeps existence from leaking.
	ErrImageNotFound = errors.New("image not found")
)

type ImageRepository interface {
	Create(image *model.Image) error
	ByID(ownerEmail, imageID string) (*model.Image, error)
	ByOwner(ownerEmail string) ([]*model.Image, error)
	SetStyle(render *model.StyleRender) error
	Delete(ownerEmail, imageID string) error
	Original(ownerEmail, imageID string) ([]byte, error)
}

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(image *model.Image) error {
	query := `INSERT INTO images (id, owner_email, prompt, original, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, image.ID, image.OwnerEmail, image.Prompt, image.Original, image.CreatedAt)
	return err
}

func (r *imageRepository) ByID(ownerEmail, imageID string) (*model.Image, error) {
	image := &model.Image{}
	query := `SELECT * FROM images WHERE id = $1 AND owner_email = $2`

	err := r.db.Get(image, query, imageID, ownerEmail)
	if err == sql.ErrNoRows {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.loadStyles(image)
	if err != nil {
		return nil, err
	}

	return image, nil
}

func (r *imageRepository) ByOwner(ownerEmail string) ([]*model.Image, error) {
	var images []*model.Image
	query := `SELECT * FROM images WHERE owner_email = $1 ORDER BY created_at ASC`

	err := r.db.Select(&images, query, ownerEmail)
	if err != nil {
		return nil, err
	}

	for _, image := range images {
		err = r.loadStyles(image)
		if err != nil {
			return nil, err
		}
	}

	return images, nil
}

func (r *imageRepository) loadStyles(image *model.Image) error {
	query := `SELECT * FROM image_styles WHERE image_id = $1 ORDER BY style ASC`

	return r.db.Select(&image.Styles, query, image.ID)
}

func (r *imageRepository) SetStyle(render *model.StyleRender) error {
	// Upsert: re-applying a style replaces the previous render for that key
	query := `INSERT INTO image_styles (image_id, style, data, updated_at) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (image_id, style) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, render.ImageID, render.Style, render.Data, render.UpdatedAt)
	return err
}

func (r *imageRepository) Delete(ownerEmail, imageID string) error {
	query := `DELETE FROM images WHERE id = $1 AND owner_email = $2`

	result, err := r.db.Exec(query, imageID, ownerEmail)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrImageNotFound
	}

	return nil
}

func (r *imageRepository) Original(ownerEmail, imageID string) ([]byte, error) {
	var original []byte
	query := `SELECT original FROM images WHERE id = $1 AND owner_email = $2`

	err := r.db.Get(&original, query, imageID, ownerEmail)
	if err == sql.ErrNoRows {
		return nil, ErrImageNotFound
	}

	return original, err
}
