package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	authsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
	"github.com/sanjeevkuinkel/shopOnly/internal/utility"
)

// AuthManager quản lý xác thực người dùng
type AuthManager struct {
	UserCRUD     *authsvc.UserService
	TokenService *authsvc.TokenService
	Cache        *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	newManager := new(AuthManager)

	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	newManager.UserCRUD = userService

	tokenService, err := authsvc.NewTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %v", err)
	}
	newManager.TokenService = tokenService

	// Khởi tạo cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút.
	// Chỉ cache kết quả blacklist DƯƠNG TÍNH (token đã bị vô hiệu hóa thì
	// không bao giờ hợp lệ trở lại), nên cache không gây stale-allow.
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// isBlacklisted kiểm tra token có bị vô hiệu hóa không (có cache dương tính)
func (am *AuthManager) isBlacklisted(ctx context.Context, token string) (bool, error) {
	cacheKey := "blacklisted:" + token
	if _, found := am.Cache.Get(cacheKey); found {
		return true, nil
	}

	blacklisted, err := am.TokenService.IsBlacklisted(ctx, token)
	if err != nil {
		return false, err
	}
	if blacklisted {
		am.Cache.Set(cacheKey, true)
	}
	return blacklisted, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// Parse JWT (chữ ký + hết hạn), kiểm tra blacklist, tìm user theo token đang lưu,
// rồi đặt user_id / user_role / user vào context locals.
func AuthMiddleware() fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Validate chữ ký và hạn của JWT
		claims, err := authsvc.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		// Kiểm tra token có bị vô hiệu hóa (logout) không
		blacklisted, err := authManager.isBlacklisted(c.Context(), token)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}
		if blacklisted {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Tìm user có token này (token mới nhất được cập nhật mỗi lần login)
		user, err := authManager.UserCRUD.FindOne(c.Context(), bson.M{"token": token}, nil)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":    c.Path(),
				"user_id": claims.UserID,
			}).Warn("Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user_role", user.Role)
		c.Locals("user", user)

		return c.Next()
	}
}

// RequireRoles middleware kiểm tra role của người dùng.
// Phải đứng sau AuthMiddleware (đọc user_role từ locals).
func RequireRoles(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok || role == "" {
			HandleErrorResponse(c, common.ErrForbidden)
			return nil
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		logger.GetAppLogger().WithFields(logrus.Fields{
			"path":           c.Path(),
			"user_role":      role,
			"required_roles": roles,
		}).Warn("User does not have required role")
		HandleErrorResponse(c, common.NewError(
			common.ErrCodeAuthRole,
			fmt.Sprintf("Yêu cầu một trong các vai trò: %s", strings.Join(roles, ", ")),
			common.StatusForbidden,
			nil,
		))
		return nil
	}
}
