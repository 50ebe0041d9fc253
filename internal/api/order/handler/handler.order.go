// Package orderhdl xử lý các request HTTP cho đơn hàng.
package orderhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/base/handler"
	orderdto "github.com/sanjeevkuinkel/shopOnly/internal/api/order/dto"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
	ordersvc "github.com/sanjeevkuinkel/shopOnly/internal/api/order/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// OrderHandler xử lý các request đơn hàng
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, orderdto.OrderStatusUpdateInput, orderdto.OrderStatusUpdateInput]
	orderService *ordersvc.OrderService
}

// NewOrderHandler tạo instance mới của OrderHandler dùng chung OrderService đã có
func NewOrderHandler(orderService *ordersvc.OrderService) (*OrderHandler, error) {
	if orderService == nil {
		return nil, fmt.Errorf("order service is nil")
	}
	baseHandler := basehdl.NewBaseHandler[models.Order, orderdto.OrderStatusUpdateInput, orderdto.OrderStatusUpdateInput](orderService)
	return &OrderHandler{
		BaseHandler:  baseHandler,
		orderService: orderService,
	}, nil
}

// HandleListMyOrders liệt kê đơn hàng của user hiện tại (phân trang)
func (h *OrderHandler) HandleListMyOrders(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}

		page, limit := h.ParsePagination(c)
		result, err := h.orderService.ListByUser(c.Context(), userID, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetOrder lấy chi tiết một đơn hàng. User thường chỉ xem được đơn
// của chính mình; admin xem được mọi đơn.
func (h *OrderHandler) HandleGetOrder(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}

		orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		role, _ := c.Locals("user_role").(string)
		var order models.Order
		if role == authmodels.RoleAdmin {
			order, err = h.orderService.BaseServiceMongoImpl.FindOneById(c.Context(), orderID)
		} else {
			order, err = h.orderService.GetForUser(c.Context(), orderID, userID)
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleUpdateStatus cập nhật trạng thái đơn hàng (admin)
func (h *OrderHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		var input orderdto.OrderStatusUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.orderService.UpdateStatus(c.Context(), orderID, input.Status)
		if err == nil {
			logger.LogAction("order_status_update", c, map[string]interface{}{
				"orderId": orderID.Hex(),
				"status":  input.Status,
			})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}
