//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入（如Spring的@Autowired）不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewUserRepository）
// - Injector: 声明最终要构造的目标类型（如*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appauthor "github.com/xiebiao/bookmarket/internal/application/author"
	appbook "github.com/xiebiao/bookmarket/internal/application/book"
	appcart "github.com/xiebiao/bookmarket/internal/application/cart"
	appgenre "github.com/xiebiao/bookmarket/internal/application/genre"
	appsearch "github.com/xiebiao/bookmarket/internal/application/search"
	apptxn "github.com/xiebiao/bookmarket/internal/application/transaction"
	appuser "github.com/xiebiao/bookmarket/internal/application/user"
	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/genre"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookmarket/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookmarket/internal/infrastructure/storage"
	"github.com/xiebiao/bookmarket/internal/interface/http/handler"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	"github.com/xiebiao/bookmarket/pkg/jwt"
	"github.com/xiebiao/bookmarket/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接、对象存储、消息队列
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	provideObjectStorage,
	providePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewAuthorRepository,
	mysql.NewGenreRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewTransactionRepository,
	mysql.NewTxManager,
	// 用例依赖的是各自包里声明的小接口，这里统一绑到具体实现
	wire.Bind(new(appgenre.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apptxn.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	author.NewService,
	genre.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewGetProfileUseCase,
	appauthor.NewAuthorsUseCase,
	appgenre.NewManageGenresUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSortBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewGiveawaysUseCase,
	appbook.NewUpdateStockUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewUploadImageUseCase,
	appsearch.NewAdvancedSearchUseCase,
	appcart.NewCartUseCase,
	apptxn.NewCheckoutUseCase,
	apptxn.NewHistoryUseCase,
	apptxn.NewRateUseCase,
	apptxn.NewReportUseCase,
	apptxn.NewBuyUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideCatalogCache,
	middleware.NewAuthMiddleware,
	wire.Bind(new(appbook.GiveawayCache), new(*redis.CatalogCache)),
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewAuthorHandler,
	handler.NewGenreHandler,
	handler.NewBookHandler,
	handler.NewSearchHandler,
	handler.NewCartHandler,
	handler.NewTransactionHandler,
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 教学说明：
// 有些依赖的构造函数参数不是直接的类型，需要从Config中提取
// 这时需要编写自定义Provider函数

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideCatalogCache 从Redis客户端创建目录缓存
func provideCatalogCache(client *goredis.Client, cfg *config.Config) *redis.CatalogCache {
	return redis.NewCatalogCache(client, cfg.Redis.CacheTTL)
}

// provideObjectStorage 创建S3对象存储客户端
func provideObjectStorage(cfg *config.Config) (*storage.ObjectStorage, error) {
	return storage.NewObjectStorage(context.Background(), cfg.Storage)
}

// providePublisher 创建MQ发布者
// URL为空时返回nil，用例里对nil publisher做了保护（事件静默不发）
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if cfg.MQ.URL == "" {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册复用main.go里的registerRoutes，避免两份路由表漂移
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authorHandler *handler.AuthorHandler,
	genreHandler *handler.GenreHandler,
	bookHandler *handler.BookHandler,
	searchHandler *handler.SearchHandler,
	cartHandler *handler.CartHandler,
	txnHandler *handler.TransactionHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID(), middleware.CORS(), middleware.Metrics())

	registerRoutes(r, &handlers{
		user:        userHandler,
		author:      authorHandler,
		genre:       genreHandler,
		book:        bookHandler,
		search:      searchHandler,
		cart:        cartHandler,
		transaction: txnHandler,
	}, authMiddleware)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// wire.Build会在编译期分析依赖关系，生成wire_gen.go
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	// 占位返回值，实际代码由Wire生成
	return nil, nil
}
