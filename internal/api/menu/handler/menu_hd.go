package menuHandler

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"restobot/internal/api/menu"
	contextPkg "restobot/pkg/context"
	"restobot/pkg/handlerUtil"
)

func (h *MenuHandler) ListDishes(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	filter := menu.DishFilter{Category: ctx.Query("category")}
	if raw := ctx.Query("max_price"); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			return errHandler.HandleValidationError(ctx, requestID, fmt.Errorf("max_price: %w", err), ctx.Path())
		}
		filter.MaxPrice = &price
	}

	if err := h.validator.Struct(filter); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	dishes, err := h.menuService.ListDishes(c, filter)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_dishes")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, dishes)
	}
}

func (h *MenuHandler) GetDish(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	dish, err := h.menuService.GetDish(c, name)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_dish")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, dish)
	}
}

func (h *MenuHandler) ListCategories(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	categories, err := h.menuService.ListCategories(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_categories")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, categories)
	}
}
