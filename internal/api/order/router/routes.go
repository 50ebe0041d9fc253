// Package router đăng ký các route thuộc domain order.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/api/middleware"
	orderhdl "github.com/sanjeevkuinkel/shopOnly/internal/api/order/handler"
	ordersvc "github.com/sanjeevkuinkel/shopOnly/internal/api/order/service"
	apirouter "github.com/sanjeevkuinkel/shopOnly/internal/api/router"
)

// Register đăng ký tất cả route đơn hàng lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return fmt.Errorf("failed to create order service: %w", err)
	}
	orderHandler, err := orderhdl.NewOrderHandler(orderService)
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	adminOnly := middleware.RequireRoles(authmodels.RoleAdmin)

	// Đơn hàng của chính mình
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "GET", "/", []fiber.Handler{authMiddleware}, orderHandler.HandleListMyOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "GET", "/:id", []fiber.Handler{authMiddleware}, orderHandler.HandleGetOrder)

	// Admin: cập nhật trạng thái và duyệt toàn bộ đơn
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "PUT", "/:id/status", []fiber.Handler{authMiddleware, adminOnly}, orderHandler.HandleUpdateStatus)
	r.RegisterCRUDRoutes(v1, "/admin/order", orderHandler, apirouter.ReadOnlyConfig, []fiber.Handler{authMiddleware, adminOnly})

	return nil
}
