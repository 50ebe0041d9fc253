// Package catalogsvc - test logic phân tích lợi nhuận sản phẩm.
package catalogsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
)

func TestAnalyzeOne_HighMargin(t *testing.T) {
	p := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Bàn gỗ sồi",
		Price:     1000,
		CostPrice: 600,
	}
	result := analyzeOne(p)

	assert.Equal(t, int64(400), result.GrossProfit)
	assert.True(t, result.MarginDefined)
	assert.InDelta(t, 40.0, result.ProfitMargin, 0.0001)
	assert.Equal(t, models.MarginHigh, result.MarginCategory)
}

func TestAnalyzeOne_MarginExactly30IsLow(t *testing.T) {
	// margin = 30 đúng ngưỡng: so sánh chặt nên vẫn là Low-Margin
	p := models.Product{Price: 100, CostPrice: 70}
	result := analyzeOne(p)

	assert.InDelta(t, 30.0, result.ProfitMargin, 0.0001)
	assert.Equal(t, models.MarginLow, result.MarginCategory)
}

func TestAnalyzeOne_JustAbove30IsHigh(t *testing.T) {
	// 31/100 = 31% > 30
	p := models.Product{Price: 100, CostPrice: 69}
	result := analyzeOne(p)

	assert.Equal(t, models.MarginHigh, result.MarginCategory)
}

func TestAnalyzeOne_ZeroPriceMarginUndefined(t *testing.T) {
	// price = 0: margin không xác định, không chia cho 0
	p := models.Product{Price: 0, CostPrice: 500}
	result := analyzeOne(p)

	assert.False(t, result.MarginDefined)
	assert.Equal(t, float64(0), result.ProfitMargin)
	assert.Equal(t, int64(-500), result.GrossProfit)
	assert.Equal(t, models.MarginLow, result.MarginCategory)
}

func TestAnalyzeOne_NegativeMargin(t *testing.T) {
	// Bán lỗ: grossProfit âm, margin âm nhưng vẫn xác định
	p := models.Product{Price: 100, CostPrice: 150}
	result := analyzeOne(p)

	assert.True(t, result.MarginDefined)
	assert.Equal(t, int64(-50), result.GrossProfit)
	assert.InDelta(t, -50.0, result.ProfitMargin, 0.0001)
	assert.Equal(t, models.MarginLow, result.MarginCategory)
}
