// Package reportsvc - test xuất file báo cáo và vòng đời file tạm.
package reportsvc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/sanjeevkuinkel/shopOnly/internal/api/report/models"
)

func sampleTotalReport() *models.TotalReport {
	return &models.TotalReport{
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-31",
		TotalRevenue: 5000,
		TotalOrders:  12,
		TotalItems:   30,
		TopProducts: []models.ProductSales{
			{Name: "Áo thun", Quantity: 20, Revenue: 2000},
			{Name: "Quần jean", Quantity: 10, Revenue: 3000},
		},
	}
}

func TestExportCSV_WritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")

	got, err := exportCSV(sampleTotalReport(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Total Revenue,5000")
	assert.Contains(t, content, "Áo thun,20,2000")
}

func TestReadAndRemove_FileIsTransient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	_, err := exportCSV(sampleTotalReport(), path)
	require.NoError(t, err)

	data, err := ReadAndRemove(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Sales Report"))

	// File export chỉ phục vụ đúng một response: đọc xong phải bị xóa
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadAndRemove_MissingFile(t *testing.T) {
	_, err := ReadAndRemove(filepath.Join(t.TempDir(), "khong_ton_tai.csv"))
	assert.Error(t, err)
}

func TestExportContentType(t *testing.T) {
	assert.Equal(t, "text/csv", ExportContentType("sales_2024.csv"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ExportContentType("sales_2024.xlsx"))
	assert.Equal(t, "application/pdf", ExportContentType("sales_2024.pdf"))
	assert.Equal(t, "application/octet-stream", ExportContentType("sales_2024.bin"))
}
