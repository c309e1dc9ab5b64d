package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"locality_dev_v1_202609/internal/controller"
	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/internal/router"
	"locality_dev_v1_202609/internal/service"
	"locality_dev_v1_202609/internal/task"
	"locality_dev_v1_202609/pkg/catalog"
	"locality_dev_v1_202609/pkg/database"
	"locality_dev_v1_202609/pkg/search"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Search,
		deps.Controllers.Wishlist,
		deps.Controllers.Business,
		deps.Controllers.Product,
		deps.Controllers.Upload,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Business  repository.BusinessRepository
	Product   repository.ProductRepository
	ImportJob repository.ImportJobRepository
	User      repository.UserRepository
	Wishlist  repository.WishlistRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Business *service.BusinessService
	Product  *service.ProductService
	Wishlist *service.WishlistService
	Upload   *service.UploadService
	Index    search.Index
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Search   *controller.SearchController
	Wishlist *controller.WishlistController
	Business *controller.BusinessController
	Product  *controller.ProductController
	Upload   *controller.UploadController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL",
		"host=localhost user=locality password=locality dbname=locality port=5432 sslmode=disable")
	return database.InitDB(dsn,
		&model.User{}, &model.WishlistItem{},
		&model.Business{}, &model.Product{},
		&model.ImportJob{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Business:  repository.NewBusinessRepository(db),
		Product:   repository.NewProductRepository(db),
		ImportJob: repository.NewImportJobRepository(db),
		User:      repository.NewUserRepository(db),
		Wishlist:  repository.NewWishlistRepository(db),
	}

	// -------- 外部客户端 --------
	index := search.NewClient(&search.Config{
		AppID:     getEnv("SEARCH_APP_ID", ""),
		APIKey:    getEnv("SEARCH_API_KEY", ""),
		IndexName: getEnv("SEARCH_INDEX", "products"),
	})
	etsyClient := catalog.NewEtsyClient(getEnv("ETSY_API_KEY", ""))
	shopifyClient := catalog.NewShopifyClient()

	// -------- 存储 --------
	storage := initStorage()

	// -------- 业务服务 --------
	services := &Services{
		Index:    index,
		Auth:     service.NewAuthService(repos.User),
		Business: service.NewBusinessService(repos.Business, storage),
		Product:  service.NewProductService(repos.Business, repos.Product, index),
		Wishlist: service.NewWishlistService(repos.Wishlist, index),
		Upload: service.NewUploadService(
			repos.Business, repos.Product, repos.ImportJob,
			index, etsyClient, shopifyClient,
			service.NewRunRegistry(),
		),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Search:   controller.NewSearchController(index),
		Wishlist: controller.NewWishlistController(services.Wishlist),
		Business: controller.NewBusinessController(services.Business),
		Product:  controller.NewProductController(services.Product),
		Upload:   controller.NewUploadController(services.Upload),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化存储
func initStorage() service.StorageProvider {
	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "s3"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", "us-east-1"),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "locality"),
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return storage
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	uploadTask := task.NewUploadTask(deps.Repos.Business, deps.Services.Upload)
	uploadTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
