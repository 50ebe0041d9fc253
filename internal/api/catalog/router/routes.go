// Package router đăng ký các route thuộc domain catalog: Product, Search, Profitability.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	cataloghdl "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/handler"
	"github.com/sanjeevkuinkel/shopOnly/internal/api/middleware"
	apirouter "github.com/sanjeevkuinkel/shopOnly/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("failed to create product handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuthMiddleware()
	sellerOrAdmin := middleware.RequireRoles(authmodels.RoleSeller, authmodels.RoleAdmin)
	adminOnly := middleware.RequireRoles(authmodels.RoleAdmin)

	// Tìm kiếm công khai: ghi nhận danh tính nếu có token, không thì guest
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "GET", "/search", []fiber.Handler{optionalAuth}, productHandler.HandleSearch)

	// Đọc sản phẩm công khai (danh sách, chi tiết, đếm, phân trang...)
	r.RegisterCRUDRoutes(v1, "/product", productHandler, apirouter.ReadOnlyConfig, nil)

	// Tạo / sửa / xóa: seller hoặc admin, kiểm tra chủ sở hữu ở handler
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "POST", "/", []fiber.Handler{authMiddleware, sellerOrAdmin}, productHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "PUT", "/:id", []fiber.Handler{authMiddleware, sellerOrAdmin}, productHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "DELETE", "/:id", []fiber.Handler{authMiddleware, sellerOrAdmin}, productHandler.HandleDelete)

	// Phân tích
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/profitability", []fiber.Handler{authMiddleware, sellerOrAdmin}, productHandler.HandleProfitability)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/top-searched-terms", []fiber.Handler{authMiddleware, adminOnly}, productHandler.HandleTopSearchedTerms)

	return nil
}
