package menu

import "restobot/internal/entity"

type DishFilter struct {
	Category string `validate:"omitempty,max=64"`
	MaxPrice *int
}

type DishResponse struct {
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories"`
	Synonyms    []string `json:"synonyms,omitempty"`
}

func NewDishResponse(d entity.Dish) DishResponse {
	return DishResponse{
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		Categories:  d.Categories,
		Synonyms:    d.Synonyms,
	}
}

type DishesResponse struct {
	Dishes []DishResponse `json:"dishes"`
	Total  int            `json:"total"`
}

type CategoryResponse struct {
	Name   string   `json:"name"`
	Dishes []string `json:"dishes"`
}
