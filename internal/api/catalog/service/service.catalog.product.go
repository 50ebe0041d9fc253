// Package catalogsvc - service nghiệp vụ cho domain catalog (sản phẩm, tìm kiếm, lợi nhuận).
package catalogsvc

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	basesvc "github.com/sanjeevkuinkel/shopOnly/internal/api/base/service"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// ProductService quản lý sản phẩm và các nghiệp vụ liên quan.
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
	searchLogService *SearchLogService
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	searchLogService, err := NewSearchLogService()
	if err != nil {
		return nil, err
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](collection),
		searchLogService:     searchLogService,
	}, nil
}

// SearchLogService trả về service nhật ký tìm kiếm bên trong.
func (s *ProductService) SearchLogService() *SearchLogService {
	return s.searchLogService
}

// Search tìm sản phẩm theo tên (không phân biệt hoa thường, match một phần).
// LUÔN ghi nhật ký tìm kiếm, kể cả khi kết quả rỗng.
func (s *ProductService) Search(ctx context.Context, term string, userID *primitive.ObjectID, role string) ([]models.Product, error) {
	s.searchLogService.LogSearch(ctx, term, userID, role)

	filter := bson.M{
		"name": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"},
	}
	products, err := s.BaseServiceMongoImpl.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// CanModify kiểm tra quyền sửa/xóa sản phẩm: chủ sở hữu (seller tạo ra) hoặc admin.
func (s *ProductService) CanModify(product models.Product, callerID primitive.ObjectID, role string) bool {
	if role == authmodels.RoleAdmin {
		return true
	}
	return product.SellerID == callerID
}

// analyzeOne tính toán lợi nhuận cho một sản phẩm.
// grossProfit = price - costPrice; margin = grossProfit/price*100.
// Khi price = 0 margin không xác định: báo cáo margin 0, MarginDefined = false.
// High-Margin khi và chỉ khi margin > 30 (so sánh chặt, margin = 30 là Low-Margin).
func analyzeOne(p models.Product) models.ProductProfitability {
	result := models.ProductProfitability{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		GrossProfit: p.Price - p.CostPrice,
	}
	if p.Price == 0 {
		result.ProfitMargin = 0
		result.MarginDefined = false
		result.MarginCategory = models.MarginLow
		return result
	}
	result.MarginDefined = true
	result.ProfitMargin = float64(result.GrossProfit) / float64(p.Price) * 100
	if result.ProfitMargin > 30 {
		result.MarginCategory = models.MarginHigh
	} else {
		result.MarginCategory = models.MarginLow
	}
	return result
}

// AnalyzeProfitability phân tích lợi nhuận toàn bộ sản phẩm theo filter
// (nil = tất cả; seller truyền filter theo sellerId để giới hạn phạm vi).
func (s *ProductService) AnalyzeProfitability(ctx context.Context, filter bson.M) ([]models.ProductProfitability, error) {
	if filter == nil {
		filter = bson.M{}
	}
	products, err := s.BaseServiceMongoImpl.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	results := make([]models.ProductProfitability, 0, len(products))
	for _, p := range products {
		results = append(results, analyzeOne(p))
	}
	return results, nil
}
