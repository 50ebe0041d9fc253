package authhdl

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/dto"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/base/handler"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	authsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput](userService)
	return &UserHandler{
		BaseHandler: baseHandler,
		userService: userService,
	}, nil
}

// HandleRegister xử lý đăng ký người dùng mới
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.Register(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAuth("register", c, map[string]interface{}{"email": user.Email})
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleLogin xử lý đăng nhập người dùng
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.Login(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAuth("login", c, map[string]interface{}{"email": user.Email})
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleLogout xử lý đăng xuất người dùng (blacklist token hiện tại)
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		// Lấy token từ header Authorization
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		token := parts[1]

		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}

		err = h.userService.Logout(c.Context(), objID, token)
		if err == nil {
			logger.LogAuth("logout", c, nil)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleGetProfile lấy thông tin profile của người dùng
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}
		user, err := h.userService.BaseServiceMongoImpl.FindOneById(c.Context(), objID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user.Password = ""
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleUpdateProfile cập nhật thông tin profile
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		var input authdto.UserChangeInfoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}

		update := &basesvc.UpdateData{Set: map[string]interface{}{}}
		if input.FirstName != "" {
			update.Set["firstName"] = input.FirstName
		}
		if input.LastName != "" {
			update.Set["lastName"] = input.LastName
		}
		if input.Gender != "" {
			update.Set["gender"] = input.Gender
		}
		if input.Location != "" {
			update.Set["location"] = input.Location
		}

		updatedUser, err := h.userService.BaseServiceMongoImpl.UpdateById(c.Context(), objID, update)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		updatedUser.Password = ""
		h.HandleResponse(c, updatedUser, nil)
		return nil
	})
}

// HandleBlockUser khóa người dùng theo email (admin)
func (h *UserHandler) HandleBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.BlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.SetBlock(c.Context(), input.Email, true, input.Note)
		if err == nil {
			logger.LogAction("user_block", c, map[string]interface{}{"email": input.Email})
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleUnBlockUser mở khóa người dùng theo email (admin)
func (h *UserHandler) HandleUnBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UnBlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.SetBlock(c.Context(), input.Email, false, "")
		if err == nil {
			logger.LogAction("user_unblock", c, map[string]interface{}{"email": input.Email})
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}
