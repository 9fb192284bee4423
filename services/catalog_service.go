package services

import (
	"context"
	"sort"

	"github.com/gosimple/slug"
	"github.com/yeremiapane/restaurant-ordering/config"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/gorm"
)

// Category is a catalog category as exposed by the API.
type Category struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryRegistry is the fixed set of catalog categories, keyed by slug.
// It is built once at startup and read-only afterwards.
type CategoryRegistry struct {
	bySlug map[string]Category
	order  []string
}

func NewCategoryRegistry(categories []config.CatalogCategory) (*CategoryRegistry, error) {
	r := &CategoryRegistry{bySlug: make(map[string]Category, len(categories))}
	for _, c := range categories {
		key := slug.Make(c.Name)
		if key == "" {
			return nil, utils.NewValidationError("catalog category %q has no usable name", c.Name)
		}
		if _, dup := r.bySlug[key]; dup {
			return nil, utils.NewValidationError("catalog category %q is listed twice", c.Name)
		}
		r.bySlug[key] = Category{Slug: key, Name: c.Name, Description: c.Description}
		r.order = append(r.order, key)
	}
	sort.Strings(r.order)
	return r, nil
}

// Lookup resolves a category by slug or display name.
func (r *CategoryRegistry) Lookup(name string) (Category, bool) {
	c, ok := r.bySlug[slug.Make(name)]
	return c, ok
}

func (r *CategoryRegistry) All() []Category {
	out := make([]Category, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.bySlug[key])
	}
	return out
}

type CatalogItemInput struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
	IsAvailable *bool    `json:"isAvailable"`
}

type CatalogItemUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	IsAvailable *bool    `json:"isAvailable"`
}

// CatalogService is one CRUD service for every category.
type CatalogService struct {
	db       *gorm.DB
	registry *CategoryRegistry
}

func NewCatalogService(db *gorm.DB, registry *CategoryRegistry) *CatalogService {
	return &CatalogService{db: db, registry: registry}
}

func (s *CatalogService) Categories() []Category {
	return s.registry.All()
}

func (s *CatalogService) category(name string) (Category, error) {
	c, ok := s.registry.Lookup(name)
	if !ok {
		return Category{}, utils.NewNotFoundError("category %q not found", name)
	}
	return c, nil
}

func (s *CatalogService) ListItems(ctx context.Context, category string) ([]models.CatalogItem, error) {
	c, err := s.category(category)
	if err != nil {
		return nil, err
	}
	items := []models.CatalogItem{}
	if err := s.db.WithContext(ctx).Where("category = ?", c.Slug).Order("name ASC, id ASC").Find(&items).Error; err != nil {
		return nil, dbError(err, "catalog items")
	}
	return items, nil
}

func (s *CatalogService) AddItem(ctx context.Context, category string, in CatalogItemInput) (*models.CatalogItem, error) {
	c, err := s.category(category)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	item := models.CatalogItem{
		Category:    c.Slug,
		Name:        in.Name,
		Price:       *in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsAvailable: true,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, dbError(err, "catalog item")
	}
	// Create skips zero values that carry a column default.
	if in.IsAvailable != nil && !*in.IsAvailable {
		if err := s.db.WithContext(ctx).Model(&item).Update("is_available", false).Error; err != nil {
			return nil, dbError(err, "catalog item")
		}
	}
	return &item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, category string, id uint) (*models.CatalogItem, error) {
	c, err := s.category(category)
	if err != nil {
		return nil, err
	}
	var item models.CatalogItem
	if err := s.db.WithContext(ctx).Where("id = ? AND category = ?", id, c.Slug).First(&item).Error; err != nil {
		return nil, dbError(err, "catalog item")
	}
	return &item, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, category string, id uint, in CatalogItemUpdate) (*models.CatalogItem, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	item, err := s.GetItem(ctx, category, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.ImageURL != nil {
		changes["image_url"] = *in.ImageURL
	}
	if in.IsAvailable != nil {
		changes["is_available"] = *in.IsAvailable
	}
	if len(changes) == 0 {
		return item, nil
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(changes).Error; err != nil {
		return nil, dbError(err, "catalog item")
	}
	return s.GetItem(ctx, category, id)
}

func (s *CatalogService) DeleteItem(ctx context.Context, category string, id uint) error {
	c, err := s.category(category)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("category = ?", c.Slug).Delete(&models.CatalogItem{}, id)
	if res.Error != nil {
		return dbError(res.Error, "catalog item")
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("catalog item not found")
	}
	return nil
}
