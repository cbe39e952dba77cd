package menuHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	menuService "restobot/internal/api/menu/service"
	"restobot/internal/middleware"
)

type MenuHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	menuService menuService.IMenuService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ms menuService.IMenuService,
) *MenuHandler {
	return &MenuHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		menuService: ms,
	}
}

func (h *MenuHandler) Start(srv fiber.Router) {
	menu := srv.Group("/menu", h.middleware.NewRateLimiter)

	menu.Get("/dishes", h.ListDishes)
	menu.Get("/dishes/:name", h.GetDish)
	menu.Get("/categories", h.ListCategories)
}
