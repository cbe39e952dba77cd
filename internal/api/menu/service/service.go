package menuService

import (
	"context"

	"github.com/sirupsen/logrus"

	"restobot/internal/api/menu"
	"restobot/internal/dialogue"
)

type IMenuService interface {
	ListDishes(ctx context.Context, filter menu.DishFilter) (*menu.DishesResponse, error)
	GetDish(ctx context.Context, name string) (*menu.DishResponse, error)
	ListCategories(ctx context.Context) ([]menu.CategoryResponse, error)
}

type menuService struct {
	log       *logrus.Logger
	catalog   *dialogue.Catalog
	extractor *dialogue.Extractor
}

// NewMenuService serves the catalog the engine was built from, so menu answers and chat
// answers never disagree.
func NewMenuService(log *logrus.Logger, reg *dialogue.Registry) IMenuService {
	return &menuService{
		log:       log,
		catalog:   reg.Catalog,
		extractor: reg.Extractor,
	}
}
