package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	authdto "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/dto"
	authmodels "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/models"
	authsvc "github.com/sanjeevkuinkel/shopOnly/internal/api/auth/service"
	"github.com/sanjeevkuinkel/shopOnly/internal/global"
	"github.com/sanjeevkuinkel/shopOnly/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định: tài khoản admin nếu được cấu hình.
func InitDefaultData() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	if cfg.Admin_Email == "" || cfg.Admin_Password == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD chưa cấu hình, bỏ qua tạo admin mặc định")
		return
	}

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := userService.BaseServiceMongoImpl.DocumentExists(ctx, bson.M{"email": cfg.Admin_Email})
	if err != nil {
		log.Warnf("Không kiểm tra được tài khoản admin: %v", err)
		return
	}
	if exists {
		log.Info("Tài khoản admin mặc định đã tồn tại")
		return
	}

	_, err = userService.Register(ctx, &authdto.UserRegisterInput{
		Username:  "admin",
		Email:     cfg.Admin_Email,
		Password:  cfg.Admin_Password,
		FirstName: "System",
		LastName:  "Admin",
		Gender:    "preferNotToSay",
		Role:      authmodels.RoleAdmin,
	})
	if err != nil {
		log.Warnf("Không tạo được tài khoản admin mặc định: %v", err)
		return
	}
	log.Infof("Đã tạo tài khoản admin mặc định: %s", cfg.Admin_Email)
}
