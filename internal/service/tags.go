package service

import (
	"context"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

type TagService struct {
	base
}

// List returns all tags ordered by how often they are used.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("usage_count desc, name asc").Find(&tags).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return tags, nil
}

// Get returns one tag by name.
func (s *TagService) Get(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, storeErr(err)
	}
	return &tag, nil
}
