// Package router đăng ký các route thuộc domain cart: giỏ hàng và checkout.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	carthdl "github.com/sanjeevkuinkel/shopOnly/internal/api/cart/handler"
	"github.com/sanjeevkuinkel/shopOnly/internal/api/middleware"
	ordersvc "github.com/sanjeevkuinkel/shopOnly/internal/api/order/service"
	apirouter "github.com/sanjeevkuinkel/shopOnly/internal/api/router"
)

// Register đăng ký tất cả route giỏ hàng lên v1. Mọi route đều yêu cầu đăng nhập.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return fmt.Errorf("failed to create order service: %w", err)
	}
	cartHandler, err := carthdl.NewCartHandler(orderService)
	if err != nil {
		return fmt.Errorf("failed to create cart handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	authed := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/cart", "GET", "/", authed, cartHandler.HandleGetCart)
	apirouter.RegisterRouteWithMiddleware(v1, "/cart", "POST", "/item", authed, cartHandler.HandleAddItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/cart", "DELETE", "/item/:productId", authed, cartHandler.HandleRemoveItem)
	apirouter.RegisterRouteWithMiddleware(v1, "/cart", "POST", "/checkout", authed, cartHandler.HandleCheckout)

	return nil
}
