package reportsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	models "github.com/sanjeevkuinkel/shopOnly/internal/api/report/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
)

// GenerateScheduled sinh nội dung email cho một báo cáo định kỳ.
// role là vai trò của chủ lịch: seller nhận báo cáo giới hạn theo sản phẩm
// của mình, admin nhận toàn hệ thống.
func (s *ReportService) GenerateScheduled(ctx context.Context, reportType, role string, userID primitive.ObjectID, now time.Time) (subject, body string, err error) {
	switch reportType {
	case models.ReportTypeSales:
		return s.generateSalesEmail(ctx, role, userID, now)
	case models.ReportTypeInventory:
		return s.generateInventoryEmail(ctx, role, userID)
	case models.ReportTypeUserActivity:
		return s.generateUserActivityEmail(ctx, userID)
	case models.ReportTypeCustomerAnalysis:
		return s.generateCustomerAnalysisEmail(ctx)
	default:
		return "", "", common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Loại báo cáo không hỗ trợ: %q", reportType), common.StatusBadRequest, nil)
	}
}

// generateSalesEmail là báo cáo doanh thu của ngày hôm trước (UTC).
func (s *ReportService) generateSalesEmail(ctx context.Context, role string, userID primitive.ObjectID, now time.Time) (string, string, error) {
	day := now.UTC().AddDate(0, 0, -1)
	report, err := s.DailyReport(ctx, role, userID, day, nil)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Báo cáo doanh thu ngày %s\n\n", report.Date)
	fmt.Fprintf(&b, "Tổng doanh thu: %d\n", report.TotalRevenue)
	fmt.Fprintf(&b, "Số đơn hàng:    %d\n", report.TotalOrders)
	fmt.Fprintf(&b, "Số sản phẩm:    %d\n", report.TotalItems)
	if len(report.ProductBreakdown) > 0 {
		b.WriteString("\nChi tiết theo sản phẩm:\n")
		for _, p := range report.ProductBreakdown {
			fmt.Fprintf(&b, "  - %s: %d cái, doanh thu %d\n", p.Name, p.Quantity, p.Revenue)
		}
	}
	return fmt.Sprintf("Báo cáo doanh thu %s", report.Date), b.String(), nil
}

// generateInventoryEmail liệt kê các sản phẩm sắp hết hàng (tồn kho thấp).
func (s *ReportService) generateInventoryEmail(ctx context.Context, role string, userID primitive.ObjectID) (string, string, error) {
	filter := bson.M{"quantity": bson.M{"$lt": models.LowStockThreshold}}
	if role == authmodels.RoleSeller {
		filter["sellerId"] = userID
	}
	products, err := s.products.Find(ctx, filter, nil)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Báo cáo tồn kho (ngưỡng cảnh báo: dưới %d)\n\n", models.LowStockThreshold)
	if len(products) == 0 {
		b.WriteString("Không có sản phẩm nào sắp hết hàng.\n")
	} else {
		fmt.Fprintf(&b, "Có %d sản phẩm sắp hết hàng:\n", len(products))
		for _, p := range products {
			fmt.Fprintf(&b, "  - %s: còn %d\n", p.Name, p.Quantity)
		}
	}
	return "Báo cáo tồn kho", b.String(), nil
}

// generateUserActivityEmail tổng hợp hoạt động gần đây của chủ lịch.
func (s *ReportService) generateUserActivityEmail(ctx context.Context, userID primitive.ObjectID) (string, string, error) {
	activities, total, err := s.activityService.RecentActivity(ctx, userID, 10)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Báo cáo hoạt động tài khoản\n\nTổng số hoạt động đã ghi nhận: %d\n", total)
	if len(activities) > 0 {
		b.WriteString("\n10 hoạt động gần nhất:\n")
		for _, a := range activities {
			at := time.UnixMilli(a.CreatedAt).UTC().Format("2006-01-02 15:04:05")
			if a.Details != "" {
				fmt.Fprintf(&b, "  - [%s] %s: %s\n", at, a.ActivityType, a.Details)
			} else {
				fmt.Fprintf(&b, "  - [%s] %s\n", at, a.ActivityType)
			}
		}
	}
	return "Báo cáo hoạt động tài khoản", b.String(), nil
}

// generateCustomerAnalysisEmail tổng hợp phân tích khách hàng toàn hệ thống.
func (s *ReportService) generateCustomerAnalysisEmail(ctx context.Context) (string, string, error) {
	analysis, err := s.AnalyzeCustomerSales(ctx, nil)
	if err != nil {
		return "", "", err
	}
	segments, err := s.AnalyzeTopCustomerSegments(ctx, nil)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	b.WriteString("Báo cáo phân tích khách hàng\n\n")
	fmt.Fprintf(&b, "Khách hàng mới:     %d đơn, doanh thu %d\n", analysis.NewCustomerOrders, analysis.NewCustomerRevenue)
	fmt.Fprintf(&b, "Khách hàng quay lại: %d đơn, doanh thu %d\n", analysis.RepeatCustomerOrders, analysis.RepeatCustomerRevenue)
	fmt.Fprintf(&b, "Tổng cộng:          %d đơn, doanh thu %d\n", analysis.TotalOrders, analysis.TotalRevenue)
	if len(segments) > 0 {
		b.WriteString("\nPhân khúc theo khu vực:\n")
		for _, seg := range segments {
			fmt.Fprintf(&b, "  - %s: %d khách, %d đơn, doanh thu %d\n", seg.Location, seg.Customers, seg.Orders, seg.Revenue)
		}
	}
	return "Báo cáo phân tích khách hàng", b.String(), nil
}
