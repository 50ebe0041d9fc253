// Package models - các kiểu kết quả báo cáo bán hàng và phân tích khách hàng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
)

// Các định dạng export báo cáo.
const (
	ExportCSV   = "csv"
	ExportExcel = "excel"
	ExportPDF   = "pdf"
)

// Các loại báo cáo gửi theo lịch.
const (
	ReportTypeSales            = "sales"
	ReportTypeInventory        = "inventory"
	ReportTypeUserActivity     = "userActivity"
	ReportTypeCustomerAnalysis = "customerAnalysis"
)

// LowStockThreshold là ngưỡng tồn kho thấp cho báo cáo inventory.
const LowStockThreshold = 10

// ProductSales là doanh số tích lũy của một sản phẩm trong báo cáo.
type ProductSales struct {
	ProductID primitive.ObjectID `json:"productId"`
	Name      string             `json:"name"`
	Quantity  int64              `json:"quantity"`
	Revenue   int64              `json:"revenue"`
}

// DailyReport là báo cáo doanh thu của một ngày (theo UTC).
// Ngày không có đơn nào vẫn trả về báo cáo hợp lệ với các tổng bằng 0.
type DailyReport struct {
	Date             string         `json:"date"` // YYYY-MM-DD
	TotalRevenue     int64          `json:"totalRevenue"`
	TotalOrders      int64          `json:"totalOrders"`
	TotalItems       int64          `json:"totalItems"`
	ProductBreakdown []ProductSales `json:"productBreakdown"`
}

// TotalReport là báo cáo tổng hợp trong một khoảng ngày (bao hàm hai đầu).
type TotalReport struct {
	StartDate      string                     `json:"startDate"`
	EndDate        string                     `json:"endDate"`
	TotalRevenue   int64                      `json:"totalRevenue"`
	TotalOrders    int64                      `json:"totalOrders"`
	TotalItems     int64                      `json:"totalItems"`
	TopProducts    []ProductSales             `json:"topProducts"`    // tối đa 10, theo số lượng bán
	TopSearchTerms []catalogmodels.TermCount  `json:"topSearchTerms"` // tối đa 10
	ExportedFile   string                     `json:"-"`              // đường dẫn file tạm, handler gửi xong sẽ xóa
}

// MonthlySales là doanh số của một tháng trong báo cáo xu hướng.
// Label theo định dạng "January 2024". Products là số lượng bán theo
// tên sản phẩm trong tháng đó.
type MonthlySales struct {
	Label    string           `json:"label"`
	Month    int              `json:"month"`
	Revenue  int64            `json:"revenue"`
	Orders   int64            `json:"orders"`
	Products map[string]int64 `json:"products"`
}

// TrendReport là báo cáo xu hướng doanh thu theo tháng của một năm.
// Nếu lọc theo tháng cụ thể thì Months chỉ chứa một phần tử.
type TrendReport struct {
	Year   int            `json:"year"`
	Months []MonthlySales `json:"months"`
}

// GrowthReport so sánh doanh thu giữa hai khoảng thời gian [start, end).
// Growth theo định dạng "12.34%"; khi kỳ so sánh bằng 0 thì mẫu số được
// thay bằng 1 để tránh chia cho 0.
type GrowthReport struct {
	CurrentStart   string `json:"currentStart"`
	CurrentEnd     string `json:"currentEnd"`
	CompareStart   string `json:"compareStart"`
	CompareEnd     string `json:"compareEnd"`
	CurrentRevenue int64  `json:"currentRevenue"`
	CompareRevenue int64  `json:"compareRevenue"`
	Growth         string `json:"growth"`
}

// CustomerSalesAnalysis tách doanh thu theo phân loại khách hàng được lưu
// trên từng đơn (customerType tại thời điểm đặt hàng).
// Invariant: NewCustomerRevenue + RepeatCustomerRevenue = TotalRevenue.
type CustomerSalesAnalysis struct {
	NewCustomerRevenue    int64 `json:"newCustomerRevenue"`
	NewCustomerOrders     int64 `json:"newCustomerOrders"`
	RepeatCustomerRevenue int64 `json:"repeatCustomerRevenue"`
	RepeatCustomerOrders  int64 `json:"repeatCustomerOrders"`
	TotalRevenue          int64 `json:"totalRevenue"`
	TotalOrders           int64 `json:"totalOrders"`
}

// SegmentSales là doanh số của một phân khúc khách hàng theo location.
type SegmentSales struct {
	Location  string `json:"location" bson:"_id"`
	Revenue   int64  `json:"revenue" bson:"revenue"`
	Orders    int64  `json:"orders" bson:"orders"`
	Customers int64  `json:"customers" bson:"customers"`
}
