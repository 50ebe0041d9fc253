// Package cartsvc - service nghiệp vụ giỏ hàng và checkout.
package cartsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	authsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/service"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/cart/models"
	catalogmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	catalogsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/service"
	ordermodels "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// CheckoutCommitter ghi đơn hàng khi checkout. Tách interface để service giỏ
// hàng không phụ thuộc trực tiếp vào tầng lưu trữ đơn hàng, và để test có thể
// thay bằng committer giả.
type CheckoutCommitter interface {
	CommitOrder(ctx context.Context, order ordermodels.Order) (ordermodels.Order, error)
}

// CartService quản lý giỏ hàng của user.
type CartService struct {
	*basesvc.BaseServiceMongoImpl[models.CartItem]
	productService  *catalogsvc.ProductService
	committer       CheckoutCommitter
	activityService *authsvc.UserActivityLogService
}

// NewCartService tạo mới CartService với committer được tiêm từ ngoài.
func NewCartService(committer CheckoutCommitter) (*CartService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CartItems)
	if !exist {
		return nil, fmt.Errorf("failed to get cart_items collection: %v", common.ErrNotFound)
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, err
	}
	activityService, err := authsvc.NewUserActivityLogService()
	if err != nil {
		return nil, err
	}
	return &CartService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CartItem](collection),
		productService:       productService,
		committer:            committer,
		activityService:      activityService,
	}, nil
}

// capQuantity tính số lượng thực nhận khi thêm requested đơn vị vào giỏ,
// với stock là tồn kho sản phẩm và held là số đang giữ trong giỏ.
// Khả dụng = stock − held; khả dụng <= 0 trả lỗi tồn kho; yêu cầu vượt
// khả dụng thì cắt xuống mức tối đa (silent capping).
func capQuantity(requested, stock, held int64) (applied, rejected int64, err error) {
	if requested <= 0 {
		return 0, 0, common.NewError(common.ErrCodeValidationInput, "Số lượng phải lớn hơn 0", common.StatusBadRequest, nil)
	}
	maxAddable := stock - held
	if maxAddable <= 0 {
		return 0, 0, common.NewError(common.ErrCodeCartStock,
			fmt.Sprintf("Không thể thêm: bạn đang giữ %d/%d đơn vị của sản phẩm này trong giỏ", held, stock),
			common.StatusBadRequest, nil)
	}
	applied = requested
	if applied > maxAddable {
		applied = maxAddable
	}
	return applied, requested - applied, nil
}

// AddItem thêm sản phẩm vào giỏ, giới hạn theo tồn kho còn khả dụng.
// Kết quả gồm dòng vừa cập nhật, toàn bộ giỏ hàng sau khi thêm và applied/rejected.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int64) (*models.AddItemResult, error) {
	if quantity <= 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Số lượng phải lớn hơn 0", common.StatusBadRequest, nil)
	}

	product, err := s.productService.BaseServiceMongoImpl.FindOneById(ctx, productID)
	if err != nil {
		return nil, err
	}

	lineFilter := bson.M{"userId": userID, "productId": productID}

	var held int64
	existing, err := s.BaseServiceMongoImpl.FindOne(ctx, lineFilter, nil)
	if err == nil {
		held = existing.Quantity
	} else if err != common.ErrNotFound {
		return nil, err
	}

	applied, rejected, err := capQuantity(quantity, product.Quantity, held)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	item, err := s.BaseServiceMongoImpl.FindOneAndUpdate(ctx, lineFilter, &basesvc.UpdateData{
		Inc: map[string]interface{}{
			"quantity": applied,
			"cost":     product.CostPrice * applied,
		},
		SetOnInsert: map[string]interface{}{"createdAt": time.Now().UnixMilli()},
	}, opts)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.AddItemResult{
		Item:     item,
		Cart:     cart,
		Applied:  applied,
		Rejected: rejected,
	}, nil
}

// RemoveItem xóa một dòng sản phẩm khỏi giỏ. Trả ErrNotFound nếu không có.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	return s.BaseServiceMongoImpl.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
}

// GetCart trả về toàn bộ giỏ hàng của user.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	items, err := s.BaseServiceMongoImpl.Find(ctx, bson.M{"userId": userID}, nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// buildOrderItems snapshot tên/giá/giá vốn hiện tại của từng sản phẩm trong
// giỏ thành các dòng đơn hàng. Price là đơn giá, Cost là giá vốn của cả dòng
// (costPrice × số lượng). Tổng đơn = Σ(giá × số lượng). Sản phẩm đã bị
// xóa khỏi catalog trong lúc còn nằm trong giỏ là lỗi.
func buildOrderItems(items []models.CartItem, products []catalogmodels.Product) ([]ordermodels.OrderItem, int64, error) {
	productByID := make(map[primitive.ObjectID]catalogmodels.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	orderItems := make([]ordermodels.OrderItem, 0, len(items))
	var total int64
	for _, item := range items {
		p, ok := productByID[item.ProductID]
		if !ok {
			return nil, 0, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Sản phẩm %s trong giỏ không còn tồn tại", item.ProductID.Hex()),
				common.StatusBadRequest, nil)
		}
		orderItems = append(orderItems, ordermodels.OrderItem{
			ProductID: item.ProductID,
			Name:      p.Name,
			Quantity:  item.Quantity,
			Price:     p.Price,
			Cost:      p.CostPrice * item.Quantity,
		})
		total += p.Price * item.Quantity
	}
	return orderItems, total, nil
}

// Checkout chuyển giỏ hàng thành đơn hàng:
//  1. Giỏ rỗng → lỗi, không tạo đơn.
//  2. Snapshot giá/giá vốn của từng sản phẩm tại thời điểm checkout.
//  3. Ghi đơn qua committer (customerType tính trước khi insert).
//  4. Xóa giỏ; nếu sau khi xóa vẫn còn dòng sót lại thì báo lỗi bất nhất
//     (đơn đã tạo nhưng giỏ không sạch).
func (s *CartService) Checkout(ctx context.Context, userID primitive.ObjectID) (ordermodels.Order, error) {
	var zero ordermodels.Order

	items, err := s.GetCart(ctx, userID)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, common.ErrCartEmpty
	}

	productIDs := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productService.BaseServiceMongoImpl.FindManyByIds(ctx, productIDs)
	if err != nil {
		return zero, err
	}

	orderItems, total, err := buildOrderItems(items, products)
	if err != nil {
		return zero, err
	}

	order, err := s.committer.CommitOrder(ctx, ordermodels.Order{
		UserID: userID,
		Items:  orderItems,
		Total:  total,
	})
	if err != nil {
		return zero, err
	}

	if _, err := s.BaseServiceMongoImpl.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return zero, common.NewError(common.ErrCodeCheckoutInconsistency,
			"Đơn hàng đã được tạo nhưng không thể xóa giỏ hàng", common.StatusInternalServerError, err)
	}
	remaining, err := s.BaseServiceMongoImpl.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return zero, err
	}
	if remaining > 0 {
		return zero, common.NewError(common.ErrCodeCheckoutInconsistency,
			fmt.Sprintf("Giỏ hàng còn %d dòng sau checkout", remaining), common.StatusInternalServerError, nil)
	}

	s.activityService.Log(ctx, userID, authmodels.ActivityCheckout,
		fmt.Sprintf("Checkout đơn %s, tổng %d", order.ID.Hex(), order.Total))

	return order, nil
}
