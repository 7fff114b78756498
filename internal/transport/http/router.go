package http

import (
	"github.com/KevinSaG/my-ecommerce-sub000/internal/transport/http/handler"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handlers struct {
	Checkout *handler.CheckoutHandler
	Cart     *handler.CartHandler
	Address  *handler.AddressHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
}

func RegisterRoutes(app *fiber.App, h *Handlers, logger *zap.Logger) {
	// catalog is public; registered before the authenticated /api group so the
	// auth middleware never sees it
	products := app.Group("/api/products")
	products.Get("/:id", h.Product.FindByID)
	products.Get("", h.Product.List)

	api := app.Group("/api", middleware.NewAuthMiddleware(logger))

	api.Post("/checkout", h.Checkout.Checkout)

	cart := api.Group("/cart")
	cart.Get("", h.Cart.GetCart)
	cart.Get("/summary", h.Cart.Summary)
	cart.Post("/items", h.Cart.AddItem)
	cart.Put("/items/:id", h.Cart.UpdateItem)
	cart.Delete("/items/:id", h.Cart.RemoveItem)
	cart.Delete("", h.Cart.Clear)

	addresses := api.Group("/addresses")
	addresses.Post("", h.Address.Create)
	addresses.Get("/default", h.Address.GetDefault)
	addresses.Get("", h.Address.List)

	orders := api.Group("/orders")
	orders.Get("/:id", h.Order.FindByID)
	orders.Get("", h.Order.List)
}
