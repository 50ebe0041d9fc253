package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sanjeevkuinkel/shopOnly/config"
	"github.com/sanjeevkuinkel/shopOnly/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users             string // Tên collection cho người dùng
	UserActivityLogs  string // Tên collection cho nhật ký hoạt động người dùng
	BlacklistedTokens string // Tên collection cho token đã bị vô hiệu hóa (logout)
	Products          string // Tên collection cho sản phẩm
	SearchLogs        string // Tên collection cho nhật ký tìm kiếm sản phẩm
	CartItems         string // Tên collection cho giỏ hàng
	Orders            string // Tên collection cho đơn hàng
	ScheduledReports  string // Tên collection cho báo cáo định kỳ
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{
	Users:             "users",
	UserActivityLogs:  "user_activity_logs",
	BlacklistedTokens: "blacklisted_tokens",
	Products:          "products",
	SearchLogs:        "search_logs",
	CartItems:         "cart_items",
	Orders:            "orders",
	ScheduledReports:  "scheduled_reports",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
