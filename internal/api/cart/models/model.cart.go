// Package models - model giỏ hàng (CartItem).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem là một dòng trong giỏ hàng của user.
// Mỗi cặp (userId, productId) chỉ có một dòng duy nhất; thêm cùng sản phẩm
// nhiều lần sẽ cộng dồn Quantity và Cost.
// Cost = Σ(costPrice tại thời điểm thêm × số lượng nhận), đơn vị tiền tệ nhỏ nhất.
// Invariant: Quantity >= 1.
type CartItem struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId" index:"compound:user_product_unique"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId" index:"compound:user_product_unique"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Cost      int64              `json:"cost" bson:"cost"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// AddItemResult là kết quả của thao tác thêm vào giỏ.
// Item là dòng vừa được cập nhật, Cart là TOÀN BỘ giỏ hàng của user sau khi thêm.
// Applied là số lượng thực sự được thêm, Rejected là phần bị cắt
// do vượt quá tồn kho còn khả dụng.
type AddItemResult struct {
	Item     CartItem   `json:"item"`
	Cart     []CartItem `json:"cart"`
	Applied  int64      `json:"applied"`
	Rejected int64      `json:"rejected"`
}
