package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sanjeevkuinkel/shopOnly/config"
	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	cartmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/cart/models"
	catalogmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/catalog/models"
	ordermodels "github.com/sanjeevkuinkel/shopOnly/internal/api/order/models"
	schedulemodels "github.com/sanjeevkuinkel/shopOnly/internal/api/schedule/models"
	"github.com/sanjeevkuinkel/shopOnly/internal/database"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, exists, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.UserActivityLogs), authmodels.UserActivityLog{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.BlacklistedTokens), authmodels.BlacklistedToken{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Products), catalogmodels.Product{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.SearchLogs), catalogmodels.SearchLog{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CartItems), cartmodels.CartItem{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Orders), ordermodels.Order{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ScheduledReports), schedulemodels.ScheduledReport{})
}
