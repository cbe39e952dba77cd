package menuService

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"restobot/internal/api/menu"
	contextPkg "restobot/pkg/context"
)

func (s *menuService) ListDishes(ctx context.Context, filter menu.DishFilter) (*menu.DishesResponse, error) {
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, menu.ErrInvalidPrice
	}

	category := strings.TrimSpace(filter.Category)
	if category != "" {
		if resolved, ok := s.resolveCategory(category); ok {
			category = resolved
		} else {
			return nil, menu.ErrUnknownCategory
		}
	}

	resp := &menu.DishesResponse{Dishes: []menu.DishResponse{}}
	for _, dish := range s.catalog.Dishes() {
		if category != "" && !dish.InCategory(category) {
			continue
		}
		if filter.MaxPrice != nil && dish.Price > *filter.MaxPrice {
			continue
		}
		resp.Dishes = append(resp.Dishes, menu.NewDishResponse(dish))
	}
	resp.Total = len(resp.Dishes)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"category":   category,
		"total":      resp.Total,
	}).Debug("Listed dishes")

	return resp, nil
}

// resolveCategory accepts inflected forms such as "десерты".
func (s *menuService) resolveCategory(name string) (string, bool) {
	for _, c := range s.catalog.Categories() {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return s.extractor.Category(name)
}

// GetDish accepts the catalog name, a synonym, or a misspelling close enough for the
// dialogue extractor.
func (s *menuService) GetDish(ctx context.Context, name string) (*menu.DishResponse, error) {
	dish, ok := s.catalog.Dish(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		resolved, found := s.extractor.Dish(name)
		if !found {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"name":       name,
			}).Debug("Dish lookup missed")
			return nil, menu.ErrDishNotFound
		}
		dish, _ = s.catalog.Dish(resolved)
	}

	resp := menu.NewDishResponse(dish)
	return &resp, nil
}

func (s *menuService) ListCategories(_ context.Context) ([]menu.CategoryResponse, error) {
	categories := make([]menu.CategoryResponse, 0, len(s.catalog.Categories()))
	for _, c := range s.catalog.Categories() {
		dishes := s.catalog.DishesInCategory(c)
		if dishes == nil {
			dishes = []string{}
		}
		categories = append(categories, menu.CategoryResponse{Name: c, Dishes: dishes})
	}
	return categories, nil
}
