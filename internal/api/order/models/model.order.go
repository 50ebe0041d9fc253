// Package models - model đơn hàng (Order).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái đơn hàng.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Phân loại khách hàng tại thời điểm đặt hàng:
// "new" nếu đây là đơn đầu tiên của user, "repeat" nếu đã có đơn trước đó.
const (
	CustomerTypeNew    = "new"
	CustomerTypeRepeat = "repeat"
)

// OrderItem là một dòng hàng trong đơn. Price và Cost là SNAPSHOT giá
// tại thời điểm checkout: thay đổi giá sản phẩm sau này không ảnh hưởng đơn cũ.
// Price là đơn giá; Cost là giá vốn của CẢ DÒNG (costPrice × Quantity).
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Price     int64              `json:"price" bson:"price"`
	Cost      int64              `json:"cost" bson:"cost"`
}

// Order định nghĩa mô hình đơn hàng.
// Invariant: Total = Σ(items[i].Price × items[i].Quantity).
type Order struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId" index:"single"`
	Items        []OrderItem        `json:"items" bson:"items"`
	Total        int64              `json:"total" bson:"total"`
	Status       string             `json:"status" bson:"status" index:"single" default:"pending"`
	CustomerType string             `json:"customerType" bson:"customerType"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
