// Package router đăng ký các route báo cáo.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/api/middleware"
	reporthdl "github.com/sanjeevkuinkel/shopOnly/internal/api/report/handler"
	apirouter "github.com/sanjeevkuinkel/shopOnly/internal/api/router"
)

// Register đăng ký tất cả route báo cáo lên v1.
// Báo cáo doanh thu dành cho seller (phạm vi sản phẩm của mình) và admin;
// phân tích khách hàng chỉ dành cho admin.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reportHandler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("failed to create report handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	sellerOrAdmin := middleware.RequireRoles(authmodels.RoleSeller, authmodels.RoleAdmin)
	adminOnly := middleware.RequireRoles(authmodels.RoleAdmin)

	sales := []fiber.Handler{authMiddleware, sellerOrAdmin}
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/daily", sales, reportHandler.HandleDailyReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/total", sales, reportHandler.HandleTotalReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/trend", sales, reportHandler.HandleTrendReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/growth", sales, reportHandler.HandleGrowthReport)

	admin := []fiber.Handler{authMiddleware, adminOnly}
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/customer-sales", admin, reportHandler.HandleCustomerSales)
	apirouter.RegisterRouteWithMiddleware(v1, "/report", "GET", "/customer-segments", admin, reportHandler.HandleCustomerSegments)

	return nil
}
