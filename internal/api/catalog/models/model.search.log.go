// Package models - model nhật ký tìm kiếm (SearchLog) thuộc domain catalog.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleGuest là role mặc định cho lượt tìm kiếm không đăng nhập.
const RoleGuest = "guest"

// SearchLog ghi lại MỌI lượt tìm kiếm sản phẩm, kể cả khi không có kết quả.
// UserID là con trỏ: nil khi người tìm không đăng nhập.
type SearchLog struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Term      string              `json:"term" bson:"term" index:"single"`
	UserID    *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Role      string              `json:"role" bson:"role" default:"guest"`
	CreatedAt int64               `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64               `json:"updatedAt" bson:"updatedAt"`
}

// TermCount là một dòng kết quả của thống kê từ khóa tìm kiếm nhiều nhất.
type TermCount struct {
	Term  string `json:"term" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
