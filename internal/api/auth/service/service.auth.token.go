// Package authsvc - service token (JWT + blacklist).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// CreateToken tạo JWT token chứa userID và role, hết hạn sau ttl.
func CreateToken(secret string, userID string, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("không thể ký JWT token: %w", err)
	}
	return signed, nil
}

// ParseToken parse và validate JWT token (chữ ký + hết hạn).
// Trả về claims nếu hợp lệ, common.ErrTokenExpired/ErrTokenInvalid nếu không.
func ParseToken(secret string, tokenStr string) (*models.JwtClaims, error) {
	claims := &models.JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không hợp lệ: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// TokenService quản lý blacklist token (token bị vô hiệu hóa khi logout).
type TokenService struct {
	*basesvc.BaseServiceMongoImpl[models.BlacklistedToken]
}

// NewTokenService tạo mới TokenService
func NewTokenService() (*TokenService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.BlacklistedTokens)
	if !exist {
		return nil, fmt.Errorf("failed to get blacklisted_tokens collection: %v", common.ErrNotFound)
	}
	return &TokenService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.BlacklistedToken](collection),
	}, nil
}

// Blacklist đưa token vào danh sách vô hiệu hóa.
// TTL index trên expiresAt sẽ tự xóa document khi token gốc hết hạn.
func (s *TokenService) Blacklist(ctx context.Context, token string, userID primitive.ObjectID, expiresAt time.Time) error {
	_, err := s.BaseServiceMongoImpl.InsertOne(ctx, models.BlacklistedToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
	if errors.Is(err, common.ErrMongoDuplicate) {
		// Token đã nằm trong blacklist
		return nil
	}
	return err
}

// IsBlacklisted kiểm tra token có nằm trong danh sách vô hiệu hóa không.
func (s *TokenService) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	return s.BaseServiceMongoImpl.DocumentExists(ctx, bson.M{"token": token})
}
