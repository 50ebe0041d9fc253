package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	authsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// OptionalAuthMiddleware xác thực người dùng nếu có token, nhưng không chặn
// request khi thiếu hoặc token không hợp lệ (request tiếp tục với vai trò guest).
// Dùng cho các endpoint công khai cần biết danh tính nếu có (ví dụ: search).
func OptionalAuthMiddleware() fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}
		token := parts[1]

		if _, err := authsvc.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token); err != nil {
			return c.Next()
		}

		if blacklisted, err := authManager.isBlacklisted(c.Context(), token); err != nil || blacklisted {
			return c.Next()
		}

		user, err := authManager.UserCRUD.FindOne(c.Context(), bson.M{"token": token}, nil)
		if err != nil || user.IsBlock {
			return c.Next()
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("user_role", user.Role)
		c.Locals("user", user)
		return c.Next()
	}
}
