// Package ordersvc - service nghiệp vụ đơn hàng.
package ordersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "github.com/sanjeevkuinkel/shopOnly/internal/api/base/models"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// OrderService quản lý đơn hàng.
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](collection),
	}, nil
}

// prepareOrder phân loại khách hàng và chốt trạng thái trước khi insert.
// priorOrders là số đơn user đã có TRƯỚC đơn này: 0 nghĩa là khách mới,
// từ đơn thứ hai trở đi là khách quay lại. Checkout luôn ghi đơn completed.
func prepareOrder(order models.Order, priorOrders int64) models.Order {
	if priorOrders == 0 {
		order.CustomerType = models.CustomerTypeNew
	} else {
		order.CustomerType = models.CustomerTypeRepeat
	}
	order.Status = models.OrderStatusCompleted
	return order
}

// CommitOrder ghi đơn hàng mới. CustomerType được xác định TRƯỚC khi insert,
// nhờ đó đơn đầu tiên luôn được ghi nhận là "new" dù chính nó làm tăng số đơn lên 1.
func (s *OrderService) CommitOrder(ctx context.Context, order models.Order) (models.Order, error) {
	priorOrders, err := s.BaseServiceMongoImpl.CountDocuments(ctx, bson.M{"userId": order.UserID})
	if err != nil {
		return models.Order{}, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, prepareOrder(order, priorOrders))
}

// ListByUser trả về đơn hàng của một user, mới nhất trước, có phân trang.
func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Order], error) {
	return s.BaseServiceMongoImpl.FindWithPagination(ctx, bson.M{"userId": userID}, page, limit, nil)
}

// GetForUser lấy một đơn hàng, đảm bảo đơn thuộc về user (admin bỏ qua kiểm tra ở handler).
func (s *OrderService) GetForUser(ctx context.Context, orderID, userID primitive.ObjectID) (models.Order, error) {
	return s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}, nil)
}

// UpdateStatus cập nhật trạng thái đơn hàng (chỉ admin gọi).
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (models.Order, error) {
	switch status {
	case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
	default:
		return models.Order{}, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái không hợp lệ: %q", status), common.StatusBadRequest, nil)
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, orderID, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": status},
	})
}
