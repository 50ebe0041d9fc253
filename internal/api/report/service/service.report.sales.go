package reportsvc

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	ordermodels "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/report/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
)

// accumulator gom doanh số theo sản phẩm từ danh sách đơn hàng.
// Chỉ các dòng hàng thuộc tập allowed được tính (allowed = nil: tính tất cả).
// Một đơn được đếm khi có ít nhất một dòng hàng được tính.
type accumulator struct {
	revenue   int64
	orders    int64
	items     int64
	byProduct map[primitive.ObjectID]*models.ProductSales
}

func newAccumulator() *accumulator {
	return &accumulator{byProduct: map[primitive.ObjectID]*models.ProductSales{}}
}

func (a *accumulator) add(order ordermodels.Order, allowed map[primitive.ObjectID]bool) {
	counted := false
	for _, item := range order.Items {
		if allowed != nil && !allowed[item.ProductID] {
			continue
		}
		lineRevenue := item.Price * item.Quantity
		a.revenue += lineRevenue
		a.items += item.Quantity

		entry, ok := a.byProduct[item.ProductID]
		if !ok {
			entry = &models.ProductSales{ProductID: item.ProductID, Name: item.Name}
			a.byProduct[item.ProductID] = entry
		}
		entry.Quantity += item.Quantity
		entry.Revenue += lineRevenue
		counted = true
	}
	if counted {
		a.orders++
	}
}

// breakdown trả về doanh số theo sản phẩm, sắp theo số lượng bán giảm dần
// (cùng số lượng thì theo tên để kết quả ổn định). limit <= 0: không giới hạn.
func (a *accumulator) breakdown(limit int) []models.ProductSales {
	result := make([]models.ProductSales, 0, len(a.byProduct))
	for _, entry := range a.byProduct {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Quantity != result[j].Quantity {
			return result[i].Quantity > result[j].Quantity
		}
		return result[i].Name < result[j].Name
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// DailyReport tính báo cáo doanh thu của một ngày theo UTC.
// Ngày không có đơn nào vẫn trả về báo cáo hợp lệ với các tổng bằng 0.
func (s *ReportService) DailyReport(ctx context.Context, role string, callerID primitive.ObjectID, day time.Time, productID *primitive.ObjectID) (*models.DailyReport, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	report := &models.DailyReport{
		Date:             dayStart.Format("2006-01-02"),
		ProductBreakdown: []models.ProductSales{},
	}

	scopeFilter, allowed, shortCircuit, err := s.scope(ctx, role, callerID, productID)
	if err != nil {
		return nil, err
	}
	if shortCircuit {
		return report, nil
	}

	orders, err := s.completedInWindow(ctx, scopeFilter, dayStart.UnixMilli(), dayEnd.UnixMilli())
	if err != nil {
		return nil, err
	}

	acc := newAccumulator()
	for _, order := range orders {
		acc.add(order, allowed)
	}

	report.TotalRevenue = acc.revenue
	report.TotalOrders = acc.orders
	report.TotalItems = acc.items
	report.ProductBreakdown = acc.breakdown(0)
	return report, nil
}

// TotalReport tính báo cáo tổng hợp trong khoảng ngày [startDay, endDay]
// (bao hàm cả hai đầu). exportFormat rỗng: không export; csv/excel/pdf:
// ghi file báo cáo và trả đường dẫn trong kết quả.
func (s *ReportService) TotalReport(ctx context.Context, role string, callerID primitive.ObjectID, startDay, endDay time.Time, productID *primitive.ObjectID, exportFormat string) (*models.TotalReport, error) {
	start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if !start.Before(end) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Khoảng ngày không hợp lệ: start phải <= end", common.StatusBadRequest, nil)
	}

	report := &models.TotalReport{
		StartDate:      start.Format("2006-01-02"),
		EndDate:        endDay.Format("2006-01-02"),
		TopProducts:    []models.ProductSales{},
		TopSearchTerms: nil,
	}

	scopeFilter, allowed, shortCircuit, err := s.scope(ctx, role, callerID, productID)
	if err != nil {
		return nil, err
	}

	if !shortCircuit {
		orders, err := s.completedInWindow(ctx, scopeFilter, start.UnixMilli(), end.UnixMilli())
		if err != nil {
			return nil, err
		}
		acc := newAccumulator()
		for _, order := range orders {
			acc.add(order, allowed)
		}
		report.TotalRevenue = acc.revenue
		report.TotalOrders = acc.orders
		report.TotalItems = acc.items
		report.TopProducts = acc.breakdown(10)
	}

	terms, err := s.searchLogs.TopSearchedTerms(ctx, start, end.Add(-time.Millisecond), searchLogRoleFilter(role))
	if err != nil {
		return nil, err
	}
	report.TopSearchTerms = terms

	if exportFormat != "" {
		path, err := s.Export(report, exportFormat)
		if err != nil {
			return nil, err
		}
		report.ExportedFile = path
	}
	return report, nil
}

// searchLogRoleFilter xác định điều kiện lọc role cho bảng top từ khóa tìm kiếm.
// Báo cáo của seller chỉ tính lượt tìm kiếm từ seller; các vai trò khác
// thấy toàn bộ lượt tìm kiếm (chuỗi rỗng = không lọc).
func searchLogRoleFilter(callerRole string) string {
	if callerRole == authmodels.RoleSeller {
		return callerRole
	}
	return ""
}

// ParseMonth chuyển tham số tháng thành số 1-12.
// Chấp nhận: số ("1".."12"), tên tiếng Anh đầy đủ hoặc viết tắt 3 chữ cái,
// không phân biệt hoa thường. Chuỗi rỗng trả về 0 (nghĩa là cả năm).
func ParseMonth(spec string) (int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(spec); err == nil {
		if n < 1 || n > 12 {
			return 0, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Tháng %d ngoài khoảng 1-12", n), common.StatusBadRequest, nil)
		}
		return n, nil
	}
	lower := strings.ToLower(spec)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || lower == name[:3] {
			return int(m), nil
		}
	}
	return 0, common.NewError(common.ErrCodeValidationInput,
		fmt.Sprintf("Không nhận dạng được tháng %q", spec), common.StatusBadRequest, nil)
}

// TrendReport tính xu hướng doanh thu theo tháng của một năm.
// monthSpec rỗng: đủ 12 tháng; ngược lại chỉ tháng được chỉ định.
func (s *ReportService) TrendReport(ctx context.Context, role string, callerID primitive.ObjectID, year int, monthSpec string, productID *primitive.ObjectID) (*models.TrendReport, error) {
	month, err := ParseMonth(monthSpec)
	if err != nil {
		return nil, err
	}

	firstMonth, lastMonth := 1, 12
	if month != 0 {
		firstMonth, lastMonth = month, month
	}

	report := &models.TrendReport{Year: year, Months: []models.MonthlySales{}}

	scopeFilter, allowed, shortCircuit, err := s.scope(ctx, role, callerID, productID)
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(year, time.Month(firstMonth), 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.Month(lastMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	var orders []ordermodels.Order
	if !shortCircuit {
		orders, err = s.completedInWindow(ctx, scopeFilter, yearStart.UnixMilli(), yearEnd.UnixMilli())
		if err != nil {
			return nil, err
		}
	}
	buckets := bucketByMonth(orders, firstMonth, lastMonth, allowed)

	for m := firstMonth; m <= lastMonth; m++ {
		report.Months = append(report.Months, models.MonthlySales{
			Label:    fmt.Sprintf("%s %d", time.Month(m).String(), year),
			Month:    m,
			Revenue:  buckets[m].revenue,
			Orders:   buckets[m].orders,
			Products: buckets[m].products,
		})
	}
	return report, nil
}

// monthBucket gom doanh thu và số lượng bán theo tên sản phẩm của một tháng.
type monthBucket struct {
	revenue  int64
	orders   int64
	products map[string]int64
}

// bucketByMonth phân bổ đơn hàng vào từng tháng theo thời điểm tạo (UTC).
// Mỗi tháng trong [firstMonth, lastMonth] luôn có bucket, kể cả khi rỗng.
func bucketByMonth(orders []ordermodels.Order, firstMonth, lastMonth int, allowed map[primitive.ObjectID]bool) map[int]*monthBucket {
	buckets := map[int]*monthBucket{}
	for m := firstMonth; m <= lastMonth; m++ {
		buckets[m] = &monthBucket{products: map[string]int64{}}
	}

	for _, order := range orders {
		acc := newAccumulator()
		acc.add(order, allowed)
		if acc.orders == 0 {
			continue
		}
		m := int(time.UnixMilli(order.CreatedAt).UTC().Month())
		b, ok := buckets[m]
		if !ok {
			continue
		}
		b.revenue += acc.revenue
		b.orders++
		for _, entry := range acc.byProduct {
			b.products[entry.Name] += entry.Quantity
		}
	}
	return buckets
}

// revenueInWindow tính tổng doanh thu trong [start, end) theo scope đã có.
func (s *ReportService) revenueInWindow(ctx context.Context, scopeFilter bson.M, allowed map[primitive.ObjectID]bool, start, end time.Time) (int64, error) {
	orders, err := s.completedInWindow(ctx, scopeFilter, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return 0, err
	}
	acc := newAccumulator()
	for _, order := range orders {
		acc.add(order, allowed)
	}
	return acc.revenue, nil
}

// GrowthReport so sánh doanh thu của kỳ hiện tại với kỳ đối chiếu.
// Cả hai kỳ đều là khoảng nửa mở [start, end).
// growth = (current − compare) / compare × 100; khi compare = 0 thì mẫu số
// được thay bằng 1 (GrowthDenominator) để kết quả vẫn xác định.
func (s *ReportService) GrowthReport(ctx context.Context, role string, callerID primitive.ObjectID, curStart, curEnd, cmpStart, cmpEnd time.Time, productID *primitive.ObjectID) (*models.GrowthReport, error) {
	if !curStart.Before(curEnd) || !cmpStart.Before(cmpEnd) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Khoảng thời gian không hợp lệ: start phải < end", common.StatusBadRequest, nil)
	}

	report := &models.GrowthReport{
		CurrentStart: curStart.Format("2006-01-02"),
		CurrentEnd:   curEnd.Format("2006-01-02"),
		CompareStart: cmpStart.Format("2006-01-02"),
		CompareEnd:   cmpEnd.Format("2006-01-02"),
		Growth:       FormatGrowth(0, 0),
	}

	scopeFilter, allowed, shortCircuit, err := s.scope(ctx, role, callerID, productID)
	if err != nil {
		return nil, err
	}
	if shortCircuit {
		return report, nil
	}

	current, err := s.revenueInWindow(ctx, scopeFilter, allowed, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	compare, err := s.revenueInWindow(ctx, scopeFilter, allowed, cmpStart, cmpEnd)
	if err != nil {
		return nil, err
	}

	report.CurrentRevenue = current
	report.CompareRevenue = compare
	report.Growth = FormatGrowth(current, compare)
	return report, nil
}

// FormatGrowth định dạng tỷ lệ tăng trưởng thành chuỗi "12.34%".
func FormatGrowth(current, compare int64) string {
	denominator := compare
	if denominator == 0 {
		denominator = 1
	}
	growth := (float64(current) - float64(compare)) / float64(denominator) * 100
	return fmt.Sprintf("%.2f%%", growth)
}
