// Package models - UserActivityLog thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại hoạt động được ghi nhận.
const (
	ActivityRegister = "register"
	ActivityLogin    = "login"
	ActivityLogout   = "logout"
	ActivityCheckout = "checkout"
)

// UserActivityLog lưu nhật ký hoạt động của người dùng.
// Được tiêu thụ bởi báo cáo userActivity (10 hoạt động gần nhất + tổng số).
type UserActivityLog struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId" index:"single"`
	ActivityType string             `json:"activityType" bson:"activityType"`
	Details      string             `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
