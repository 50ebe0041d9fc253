// Package carthdl xử lý các request HTTP cho giỏ hàng và checkout.
package carthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/base/handler"
	cartdto "github.com/sanjeevkuinkel/shopOnly/internal/api/cart/dto"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/cart/models"
	cartsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/cart/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// CartHandler xử lý các request giỏ hàng
type CartHandler struct {
	*basehdl.BaseHandler[models.CartItem, cartdto.AddItemInput, cartdto.AddItemInput]
	cartService *cartsvc.CartService
}

// NewCartHandler tạo instance mới của CartHandler
func NewCartHandler(committer cartsvc.CheckoutCommitter) (*CartHandler, error) {
	cartService, err := cartsvc.NewCartService(committer)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.CartItem, cartdto.AddItemInput, cartdto.AddItemInput](cartService)
	return &CartHandler{
		BaseHandler: baseHandler,
		cartService: cartService,
	}, nil
}

func (h *CartHandler) callerID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleAddItem thêm sản phẩm vào giỏ hàng
func (h *CartHandler) HandleAddItem(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input cartdto.AddItemInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "productId không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		result, err := h.cartService.AddItem(c.Context(), userID, productID, input.Quantity)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleRemoveItem xóa một sản phẩm khỏi giỏ hàng
func (h *CartHandler) HandleRemoveItem(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "productId không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		err = h.cartService.RemoveItem(c.Context(), userID, productID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleGetCart lấy toàn bộ giỏ hàng của user hiện tại
func (h *CartHandler) HandleGetCart(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		items, err := h.cartService.GetCart(c.Context(), userID)
		h.HandleResponse(c, items, err)
		return nil
	})
}

// HandleCheckout chuyển giỏ hàng thành đơn hàng
func (h *CartHandler) HandleCheckout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.callerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.cartService.Checkout(c.Context(), userID)
		if err == nil {
			logger.LogAction("checkout", c, map[string]interface{}{
				"orderId": order.ID.Hex(),
				"total":   order.Total,
			})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}
