// Package reporthdl xử lý các request HTTP cho báo cáo doanh thu và phân tích.
package reporthdl

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/base/handler"
	"github.com/sanjeevkuinkel/shopOnly/internal/api/middleware"
	reportsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/report/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
)

// ReportHandler xử lý các request báo cáo
type ReportHandler struct {
	reportService *reportsvc.ReportService
}

// NewReportHandler tạo instance mới của ReportHandler
func NewReportHandler() (*ReportHandler, error) {
	reportService, err := reportsvc.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %v", err)
	}
	return &ReportHandler{reportService: reportService}, nil
}

// respond trả kết quả theo format chung {code, message, data, status}.
func respond(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return
	}
	basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// caller lấy danh tính và vai trò người gọi từ locals.
func caller(c fiber.Ctx) (primitive.ObjectID, string, error) {
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

// parseDate đọc một query param dạng YYYY-MM-DD, bắt buộc khi required = true.
func parseDate(c fiber.Ctx, name string, required bool) (time.Time, bool, error) {
	v := c.Query(name)
	if v == "" {
		if required {
			return time.Time{}, false, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Thiếu tham số %s", name), common.StatusBadRequest, nil)
		}
		return time.Time{}, false, nil
	}
	parsed, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false, common.NewError(common.ErrCodeValidationFormat,
			fmt.Sprintf("Tham số %s không hợp lệ (cần YYYY-MM-DD)", name), common.StatusBadRequest, err)
	}
	return parsed, true, nil
}

// parseProductID đọc query param productId nếu có.
func parseProductID(c fiber.Ctx) (*primitive.ObjectID, error) {
	v := c.Query("productId")
	if v == "" {
		return nil, nil
	}
	objID, err := primitive.ObjectIDFromHex(v)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "productId không hợp lệ", common.StatusBadRequest, err)
	}
	return &objID, nil
}

// parseUserID đọc query param userId nếu có (giới hạn phân tích vào một khách hàng).
func parseUserID(c fiber.Ctx) (*primitive.ObjectID, error) {
	v := c.Query("userId")
	if v == "" {
		return nil, nil
	}
	objID, err := primitive.ObjectIDFromHex(v)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "userId không hợp lệ", common.StatusBadRequest, err)
	}
	return &objID, nil
}

// HandleDailyReport báo cáo doanh thu theo ngày.
// Query: date (YYYY-MM-DD, mặc định hôm nay UTC), productId tùy chọn.
func (h *ReportHandler) HandleDailyReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		callerID, role, err := caller(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		day := time.Now().UTC()
		if parsed, ok, err := parseDate(c, "date", false); err != nil {
			respond(c, nil, err)
			return nil
		} else if ok {
			day = parsed
		}

		productID, err := parseProductID(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		report, err := h.reportService.DailyReport(c.Context(), role, callerID, day, productID)
		respond(c, report, err)
		return nil
	})
}

// HandleTotalReport báo cáo tổng hợp trong khoảng ngày.
// Query: start, end (YYYY-MM-DD, bắt buộc), productId, export (csv|excel|pdf) tùy chọn.
func (h *ReportHandler) HandleTotalReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		callerID, role, err := caller(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		start, _, err := parseDate(c, "start", true)
		if err != nil {
			respond(c, nil, err)
			return nil
		}
		end, _, err := parseDate(c, "end", true)
		if err != nil {
			respond(c, nil, err)
			return nil
		}
		productID, err := parseProductID(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		report, err := h.reportService.TotalReport(c.Context(), role, callerID, start, end, productID, c.Query("export"))
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		// Có yêu cầu export: trả thẳng file trong response rồi xóa,
		// không giữ file lại trên server.
		if report.ExportedFile != "" {
			data, err := reportsvc.ReadAndRemove(report.ExportedFile)
			if err != nil {
				respond(c, nil, err)
				return nil
			}
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filepath.Base(report.ExportedFile)))
			c.Set(fiber.HeaderContentType, reportsvc.ExportContentType(report.ExportedFile))
			return c.Send(data)
		}

		respond(c, report, nil)
		return nil
	})
}

// HandleTrendReport xu hướng doanh thu theo tháng.
// Query: year (bắt buộc), month (số 1-12 hoặc tên tiếng Anh, tùy chọn), productId.
func (h *ReportHandler) HandleTrendReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		callerID, role, err := caller(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		year := fiber.Query[int](c, "year")
		if year <= 0 {
			respond(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu hoặc sai tham số year", common.StatusBadRequest, nil))
			return nil
		}
		productID, err := parseProductID(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		report, err := h.reportService.TrendReport(c.Context(), role, callerID, year, c.Query("month"), productID)
		respond(c, report, err)
		return nil
	})
}

// HandleGrowthReport so sánh doanh thu giữa hai khoảng thời gian.
// Query: currentStart, currentEnd, compareStart, compareEnd (YYYY-MM-DD, bắt buộc,
// khoảng nửa mở [start, end)), productId tùy chọn.
func (h *ReportHandler) HandleGrowthReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		callerID, role, err := caller(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		params := [4]time.Time{}
		for i, name := range []string{"currentStart", "currentEnd", "compareStart", "compareEnd"} {
			parsed, _, err := parseDate(c, name, true)
			if err != nil {
				respond(c, nil, err)
				return nil
			}
			params[i] = parsed
		}
		productID, err := parseProductID(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}

		report, err := h.reportService.GrowthReport(c.Context(), role, callerID, params[0], params[1], params[2], params[3], productID)
		respond(c, report, err)
		return nil
	})
}

// HandleCustomerSales phân tích doanh thu theo phân loại khách hàng (admin).
// Query: userId tùy chọn để giới hạn vào một khách hàng cụ thể.
func (h *ReportHandler) HandleCustomerSales(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID, err := parseUserID(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}
		analysis, err := h.reportService.AnalyzeCustomerSales(c.Context(), userID)
		respond(c, analysis, err)
		return nil
	})
}

// HandleCustomerSegments phân khúc khách hàng theo khu vực (admin).
// Query: userId tùy chọn để giới hạn vào một khách hàng cụ thể.
func (h *ReportHandler) HandleCustomerSegments(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID, err := parseUserID(c)
		if err != nil {
			respond(c, nil, err)
			return nil
		}
		segments, err := h.reportService.AnalyzeTopCustomerSegments(c.Context(), userID)
		respond(c, segments, err)
		return nil
	})
}
