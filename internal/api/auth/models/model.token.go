// Package models - JwtClaims, BlacklistedToken thuộc domain auth.
package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JwtClaims chứa data được mã hóa trong JWT token.
type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// BlacklistedToken là token đã bị vô hiệu hóa khi người dùng logout.
// ExpiresAt dùng TTL index (expireAfterSeconds:0) để MongoDB tự xóa document
// khi token gốc hết hạn.
type BlacklistedToken struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Token     string             `json:"token" bson:"token" index:"unique"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	ExpiresAt time.Time          `json:"expiresAt" bson:"expiresAt" index:"ttl:0"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
