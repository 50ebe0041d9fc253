package reportsvc

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/report/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/common"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// exportHeader là hàng tiêu đề chung cho bảng top sản phẩm của file export.
var exportHeader = []string{"Product", "Quantity", "Revenue"}

// exportDir trả về thư mục chứa file export, tạo nếu chưa có.
func exportDir() (string, error) {
	dir := "./exports"
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.ReportExportDir != "" {
		dir = global.MongoDB_ServerConfig.ReportExportDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", common.NewError(common.ErrCodeReportGenerate, "Không thể tạo thư mục export", common.StatusInternalServerError, err)
	}
	return dir, nil
}

// ExportContentType trả MIME type theo phần mở rộng của file export.
func ExportContentType(path string) string {
	switch filepath.Ext(path) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// ReadAndRemove đọc nội dung file export rồi xóa file.
// File export chỉ phục vụ đúng một response, không lưu lại trên server.
func ReadAndRemove(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewError(common.ErrCodeReportGenerate, "Không thể đọc file export", common.StatusInternalServerError, err)
	}
	if err := os.Remove(path); err != nil {
		logger.GetAppLogger().WithError(err).Warn("Không thể xóa file export sau khi gửi")
	}
	return data, nil
}

// Export ghi báo cáo tổng hợp ra file theo định dạng yêu cầu và trả đường dẫn.
func (s *ReportService) Export(report *models.TotalReport, format string) (string, error) {
	dir, err := exportDir()
	if err != nil {
		return "", err
	}
	stamp := time.Now().UTC().Format("20060102_150405")

	switch format {
	case models.ExportCSV:
		return exportCSV(report, filepath.Join(dir, fmt.Sprintf("sales_%s_%s.csv", report.StartDate, stamp)))
	case models.ExportExcel:
		return exportExcel(report, filepath.Join(dir, fmt.Sprintf("sales_%s_%s.xlsx", report.StartDate, stamp)))
	case models.ExportPDF:
		return exportPDF(report, filepath.Join(dir, fmt.Sprintf("sales_%s_%s.pdf", report.StartDate, stamp)))
	default:
		return "", common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Định dạng export không hỗ trợ: %q (csv, excel, pdf)", format), common.StatusBadRequest, nil)
	}
}

func exportCSV(report *models.TotalReport, path string) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", common.NewError(common.ErrCodeReportGenerate, "Không thể tạo file CSV", common.StatusInternalServerError, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	rows := [][]string{
		{"Sales Report", report.StartDate + " - " + report.EndDate},
		{"Total Revenue", strconv.FormatInt(report.TotalRevenue, 10)},
		{"Total Orders", strconv.FormatInt(report.TotalOrders, 10)},
		{"Total Items", strconv.FormatInt(report.TotalItems, 10)},
		{},
		exportHeader,
	}
	for _, p := range report.TopProducts {
		rows = append(rows, []string{p.Name, strconv.FormatInt(p.Quantity, 10), strconv.FormatInt(p.Revenue, 10)})
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", common.NewError(common.ErrCodeReportGenerate, "Không thể ghi file CSV", common.StatusInternalServerError, err)
	}
	return path, nil
}

func exportExcel(report *models.TotalReport, path string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Sales Report")
	f.SetCellValue(sheet, "B1", report.StartDate+" - "+report.EndDate)
	f.SetCellValue(sheet, "A2", "Total Revenue")
	f.SetCellValue(sheet, "B2", report.TotalRevenue)
	f.SetCellValue(sheet, "A3", "Total Orders")
	f.SetCellValue(sheet, "B3", report.TotalOrders)
	f.SetCellValue(sheet, "A4", "Total Items")
	f.SetCellValue(sheet, "B4", report.TotalItems)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, p := range report.TopProducts {
		row := 7 + rowIdx
		nameCell, _ := excelize.CoordinatesToCellName(1, row)
		qtyCell, _ := excelize.CoordinatesToCellName(2, row)
		revCell, _ := excelize.CoordinatesToCellName(3, row)
		f.SetCellValue(sheet, nameCell, p.Name)
		f.SetCellValue(sheet, qtyCell, p.Quantity)
		f.SetCellValue(sheet, revCell, p.Revenue)
	}

	if err := f.SaveAs(path); err != nil {
		return "", common.NewError(common.ErrCodeReportGenerate, "Không thể ghi file Excel", common.StatusInternalServerError, err)
	}
	return path, nil
}

func exportPDF(report *models.TotalReport, path string) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Sales Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", report.StartDate, report.EndDate))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total Revenue: %d", report.TotalRevenue))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total Orders: %d", report.TotalOrders))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total Items: %d", report.TotalItems))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Quantity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, "Revenue", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, p := range report.TopProducts {
		pdf.CellFormat(90, 8, p.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, strconv.FormatInt(p.Quantity, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, strconv.FormatInt(p.Revenue, 10), "1", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", common.NewError(common.ErrCodeReportGenerate, "Không thể ghi file PDF", common.StatusInternalServerError, err)
	}
	return path, nil
}
