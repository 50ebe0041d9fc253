// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	authdto "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/dto"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	tokenService    *TokenService
	activityService *UserActivityLogService
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	tokenService, err := NewTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %v", err)
	}
	activityService, err := NewUserActivityLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create activity log service: %v", err)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
		tokenService:         tokenService,
		activityService:      activityService,
	}, nil
}

// Register đăng ký người dùng mới.
// Email trùng trả về lỗi 409. Password được hash bằng bcrypt trước khi lưu.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (*models.User, error) {
	// Kiểm tra email đã tồn tại chưa
	exists, err := s.BaseServiceMongoImpl.DocumentExists(ctx, bson.M{"email": input.Email})
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			fmt.Sprintf("Email '%s' đã được sử dụng", input.Email),
			common.StatusConflict,
			nil,
		)
	}

	// Hash password bằng bcrypt
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleBuyer
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  string(hashed),
		Gender:    input.Gender,
		Location:  input.Location,
		Role:      role,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.NewError(
				common.ErrCodeAuthCredentials,
				fmt.Sprintf("Email '%s' đã được sử dụng", input.Email),
				common.StatusConflict,
				err,
			)
		}
		return nil, err
	}

	s.activityService.Log(ctx, created.ID, models.ActivityRegister, "")

	logrus.WithFields(logrus.Fields{"user_id": created.ID.Hex(), "email": created.Email}).Info("Register: Đăng ký thành công")
	created.Password = ""
	return &created, nil
}

// Login đăng nhập người dùng: so khớp bcrypt, phát hành JWT và lưu token vào user.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if user.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			"Tài khoản đã bị khóa: "+user.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	// Phát hành JWT token
	ttl := time.Duration(global.MongoDB_ServerConfig.JwtExpirationHours) * time.Hour
	token, err := CreateToken(global.MongoDB_ServerConfig.JwtSecret, user.ID.Hex(), user.Role, ttl)
	if err != nil {
		return nil, err
	}

	// Lưu token mới nhất vào user
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"token": token},
	}
	updatedUser, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}

	s.activityService.Log(ctx, user.ID, models.ActivityLogin, "")

	logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "email": user.Email}).Info("Login: Đăng nhập thành công")
	updatedUser.Password = ""
	return &updatedUser, nil
}

// Logout đăng xuất người dùng: đưa token hiện tại vào blacklist và xóa token trên user.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, token string) error {
	// Lấy thời điểm hết hạn từ claims để blacklist tự dọn theo TTL
	expiresAt := time.Now().Add(time.Duration(global.MongoDB_ServerConfig.JwtExpirationHours) * time.Hour)
	if claims, err := ParseToken(global.MongoDB_ServerConfig.JwtSecret, token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.tokenService.Blacklist(ctx, token, userID, expiresAt); err != nil {
		return err
	}

	updateData := &basesvc.UpdateData{
		Unset: map[string]interface{}{"token": ""},
	}
	if _, err := s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData); err != nil {
		return err
	}

	s.activityService.Log(ctx, userID, models.ActivityLogout, "")
	return nil
}

// SetBlock khóa hoặc mở khóa người dùng theo email (admin).
func (s *UserService) SetBlock(ctx context.Context, email string, block bool, note string) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": email}, nil)
	if err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   block,
			"blockNote": note,
		},
	}
	if block {
		// Vô hiệu hóa token hiện tại khi khóa tài khoản
		updateData.Unset = map[string]interface{}{"token": ""}
	}

	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}
	updated.Password = ""
	return &updated, nil
}

// ActivityService trả về service nhật ký hoạt động (dùng bởi các domain khác).
func (s *UserService) ActivityService() *UserActivityLogService {
	return s.activityService
}
