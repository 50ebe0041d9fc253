// Package cataloghdl xử lý các request HTTP cho domain catalog.
package cataloghdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/base/handler"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	catalogdto "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/dto"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	catalogsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// ProductHandler xử lý các request quản lý sản phẩm
type ProductHandler struct {
	*basehdl.BaseHandler[models.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput]
	productService *catalogsvc.ProductService
}

// NewProductHandler tạo instance mới của ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput](productService)
	return &ProductHandler{
		BaseHandler:    baseHandler,
		productService: productService,
	}, nil
}

// callerFromContext lấy danh tính người gọi từ locals (đã qua AuthMiddleware).
func callerFromContext(c fiber.Ctx) (primitive.ObjectID, string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, "", common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, "", common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	role, _ := c.Locals("user_role").(string)
	return objID, role, nil
}

// HandleCreate tạo sản phẩm mới, gán sellerId là người gọi
func (h *ProductHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		callerID, _, err := callerFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input catalogdto.ProductCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		product, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		product.SellerID = callerID

		created, err := h.productService.BaseServiceMongoImpl.InsertOne(c.Context(), *product)
		if err == nil {
			logger.LogAction("product_create", c, map[string]interface{}{"name": created.Name})
		}
		h.HandleResponse(c, created, err)
		return nil
	})
}

// HandleUpdate cập nhật sản phẩm. Chỉ chủ sở hữu hoặc admin được sửa.
func (h *ProductHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		callerID, role, err := callerFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		productID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		product, err := h.productService.BaseServiceMongoImpl.FindOneById(c.Context(), productID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !h.productService.CanModify(product, callerID, role) {
			h.HandleResponse(c, nil, common.ErrForbidden)
			return nil
		}

		var input catalogdto.ProductUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update := &basesvc.UpdateData{Set: map[string]interface{}{}}
		if input.Name != "" {
			update.Set["name"] = input.Name
		}
		if input.Description != "" {
			update.Set["description"] = input.Description
		}
		if input.Company != "" {
			update.Set["company"] = input.Company
		}
		if input.Price > 0 {
			update.Set["price"] = input.Price
		}
		if input.CostPrice > 0 {
			update.Set["costPrice"] = input.CostPrice
		}
		if input.Category != "" {
			update.Set["category"] = input.Category
		}
		if input.Quantity > 0 {
			update.Set["quantity"] = input.Quantity
		}
		if input.Tags != nil {
			update.Set["tags"] = input.Tags
		}
		update.Set["freeShipping"] = input.FreeShipping
		update.Set["inStock"] = input.InStock

		updated, err := h.productService.BaseServiceMongoImpl.UpdateById(c.Context(), productID, update)
		if err == nil {
			logger.LogAction("product_update", c, map[string]interface{}{"productId": productID.Hex()})
		}
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// HandleDelete xóa sản phẩm. Chỉ chủ sở hữu hoặc admin được xóa.
func (h *ProductHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		callerID, role, err := callerFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		productID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		product, err := h.productService.BaseServiceMongoImpl.FindOneById(c.Context(), productID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !h.productService.CanModify(product, callerID, role) {
			h.HandleResponse(c, nil, common.ErrForbidden)
			return nil
		}

		// Không xóa sản phẩm còn nằm trong giỏ hàng của người mua
		if err := basesvc.ValidateBeforeDeleteProduct(c.Context(), productID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.productService.BaseServiceMongoImpl.DeleteById(c.Context(), productID)
		if err == nil {
			logger.LogAction("product_delete", c, map[string]interface{}{"productId": productID.Hex()})
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleSearch tìm kiếm sản phẩm theo tên. Endpoint công khai, dùng
// OptionalAuthMiddleware: có token thì ghi nhận danh tính, không thì guest.
// Mọi lượt tìm kiếm đều được ghi nhật ký, kể cả khi không có kết quả.
func (h *ProductHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		term := c.Query("term")
		if term == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tham số term", common.StatusBadRequest, nil))
			return nil
		}

		var userID *primitive.ObjectID
		role := models.RoleGuest
		if idStr, ok := c.Locals("user_id").(string); ok && idStr != "" {
			if objID, err := primitive.ObjectIDFromHex(idStr); err == nil {
				userID = &objID
				if r, ok := c.Locals("user_role").(string); ok && r != "" {
					role = r
				}
			}
		}

		products, err := h.productService.Search(c.Context(), term, userID, role)
		h.HandleResponse(c, products, err)
		return nil
	})
}

// HandleTopSearchedTerms thống kê từ khóa được tìm nhiều nhất (admin).
// Query: start/end theo định dạng 2006-01-02 (mặc định 30 ngày gần nhất), role tùy chọn.
func (h *ProductHandler) HandleTopSearchedTerms(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		end := time.Now().UTC()
		start := end.AddDate(0, 0, -30)

		if v := c.Query("start"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số start không hợp lệ (cần YYYY-MM-DD)", common.StatusBadRequest, err))
				return nil
			}
			start = parsed
		}
		if v := c.Query("end"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số end không hợp lệ (cần YYYY-MM-DD)", common.StatusBadRequest, err))
				return nil
			}
			// end là ngày bao hàm: lấy đến hết ngày
			end = parsed.AddDate(0, 0, 1).Add(-time.Millisecond)
		}

		terms, err := h.productService.SearchLogService().TopSearchedTerms(c.Context(), start, end, c.Query("role"))
		h.HandleResponse(c, terms, err)
		return nil
	})
}

// HandleProfitability phân tích lợi nhuận sản phẩm.
// Admin thấy toàn bộ; seller chỉ thấy sản phẩm của mình.
func (h *ProductHandler) HandleProfitability(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		callerID, role, err := callerFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var filter bson.M
		if role == authmodels.RoleSeller {
			filter = bson.M{"sellerId": callerID}
		}

		results, err := h.productService.AnalyzeProfitability(c.Context(), filter)
		h.HandleResponse(c, results, err)
		return nil
	})
}
