// Package router đăng ký các route thuộc domain auth: Auth, User.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/handler"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/api/middleware"
	apirouter "github.com/sanjeevkuinkel/shopOnly/internal/api/router"
)

// Register đăng ký tất cả route auth (auth, user) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerUserRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	// Route công khai
	router.Post("/auth/register", userHandler.HandleRegister)
	router.Post("/auth/login", userHandler.HandleLogin)

	// Route yêu cầu xác thực
	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/profile", []fiber.Handler{authMiddleware}, userHandler.HandleUpdateProfile)
	return nil
}

func registerUserRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	// CRUD người dùng: chỉ admin được đọc danh sách
	r.RegisterCRUDRoutes(router, "/user", userHandler, apirouter.ReadOnlyConfig, []fiber.Handler{authMiddleware, adminOnly})

	// Khóa / mở khóa tài khoản
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/block", []fiber.Handler{authMiddleware, adminOnly}, userHandler.HandleBlockUser)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/unblock", []fiber.Handler{authMiddleware, adminOnly}, userHandler.HandleUnBlockUser)
	return nil
}
