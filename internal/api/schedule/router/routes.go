// Package router đăng ký các route lịch gửi báo cáo.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/sanjeevkuinkel/shopOnly/internal/api/middleware"
	apirouter "github.com/sanjeevkuinkel/shopOnly/internal/api/router"
	schedulehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/handler"
)

// Register đăng ký tất cả route lịch gửi báo cáo lên v1. Yêu cầu đăng nhập.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	scheduleHandler, err := schedulehdl.NewScheduleHandler()
	if err != nil {
		return fmt.Errorf("failed to create schedule handler: %w", err)
	}

	authed := []fiber.Handler{middleware.AuthMiddleware()}
	apirouter.RegisterRouteWithMiddleware(v1, "/schedule", "POST", "/", authed, scheduleHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/schedule", "GET", "/", authed, scheduleHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/schedule", "PUT", "/:id", authed, scheduleHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/schedule", "DELETE", "/:id", authed, scheduleHandler.HandleDelete)

	return nil
}
