package orderdto

// OrderStatusUpdateInput đầu vào cập nhật trạng thái đơn hàng (admin).
type OrderStatusUpdateInput struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}
