// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các role của người dùng trong hệ thống.
const (
	RoleBuyer  = "buyer"  // Người mua hàng
	RoleSeller = "seller" // Người bán hàng
	RoleAdmin  = "admin"  // Quản trị viên
)

// User định nghĩa mô hình người dùng.
// Token chứa token xác thực mới nhất của người dùng (được cập nhật mỗi lần login).
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email" index:"unique"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Gender    string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Location  string             `json:"location,omitempty" bson:"location,omitempty"`
	Role      string             `json:"role" bson:"role" index:"single" default:"buyer"`
	Token     string             `json:"token,omitempty" bson:"token,omitempty"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	BlockNote string             `json:"-" bson:"blockNote,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// UserPaginateResult đại diện cho kết quả phân trang User
type UserPaginateResult struct {
	Page      int64  `json:"page" bson:"page"`
	Limit     int64  `json:"limit" bson:"limit"`
	ItemCount int64  `json:"itemCount" bson:"itemCount"`
	Items     []User `json:"items" bson:"items"`
}
