package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/sanjeevkuinkel/shopOnly/internal/api/base/handler"
)

// CRUDHandler định nghĩa interface cho các handler đọc dữ liệu dùng chung.
// Thao tác ghi không mở qua REST chung: mỗi domain tự định nghĩa handler
// nghiệp vụ riêng (tạo sản phẩm, cập nhật lịch, đổi trạng thái đơn...).
type CRUDHandler interface {
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation đọc được mở cho mỗi collection
type CRUDConfig struct {
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination

	Count    bool // Count Documents
	Distinct bool // Distinct
	Exists   bool // Document Exists
}

// ReadOnlyConfig mở toàn bộ các operation đọc (find, find-one, count, distinct, exists).
var ReadOnlyConfig = CRUDConfig{
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	Count: true, Distinct: true, Exists: true,
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method.
// Fiber v3 không gọi middleware khi truyền trực tiếp vào router.Get(path, middleware, handler),
// nên phải tạo group với prefix và gắn middleware qua .Use().
//
// Ví dụ sử dụng:
//
//	authMiddleware := middleware.AuthMiddleware()
//	RegisterRouteWithMiddleware(router, "/cart", "POST", "/items", []fiber.Handler{authMiddleware}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware sẽ chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterCRUDRoutes đăng ký các route đọc dữ liệu cho một collection.
// middlewares được áp dụng cho tất cả các operation (thường là AuthMiddleware + RequireRoles).
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, middlewares []fiber.Handler) {
	// Read operations
	if config.Find {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find", middlewares, h.Find)
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-one", middlewares, h.FindOne)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", middlewares, h.FindOneById)
	}
	if config.FindIds {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/find-by-ids", middlewares, h.FindManyByIds)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", middlewares, h.FindWithPagination)
	}

	// Other operations
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", middlewares, h.CountDocuments)
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/distinct/:field", middlewares, h.Distinct)
	}
	if config.Exists {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/exists", middlewares, h.DocumentExists)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)

	// Health check: cả đường tắt /health lẫn đường chuẩn /api/v1/system/health
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return err
	}
	app.Get("/health", systemHandler.HandleHealth)
	v1.Get("/system/health", systemHandler.HandleHealth)

	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
