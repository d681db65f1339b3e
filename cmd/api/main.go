package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/mq"
	"github.com/xiebiao/bookmarket/pkg/response"
	"github.com/xiebiao/bookmarket/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go里有等价的Wire配置，跑`wire gen ./cmd/api`可生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化Prometheus指标（必须在任何业务代码之前）
	metrics.InitMetrics()

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 5. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 6. 初始化对象存储（书籍图片）
	store, err := storage.NewObjectStorage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("初始化对象存储失败: %v", err)
	}

	// 7. 初始化消息队列（可选，URL为空则不发事件）
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("未配置MQ，交易事件不会发布")
	}

	// 8. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	genreRepo := mysql.NewGenreRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	txnRepo := mysql.NewTransactionRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	catalogCache := redis.NewCatalogCache(redisClient, cfg.Redis.CacheTTL)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	authorService := author.NewService(authorRepo)
	genreService := genre.NewService(genreRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	refreshUseCase := appuser.NewRefreshTokenUseCase(jwtManager)
	profileUseCase := appuser.NewGetProfileUseCase(userService)

	authorsUseCase := appauthor.NewAuthorsUseCase(authorService)
	manageGenresUseCase := appgenre.NewManageGenresUseCase(genreService, txManager)

	createBookUseCase := appbook.NewCreateBookUseCase(bookService, authorService, genreRepo)
	listBooksUseCase := appbook.NewListBooksUseCase(bookRepo, authorRepo, genreRepo, userRepo)
	sortBooksUseCase := appbook.NewSortBooksUseCase(bookRepo)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, authorRepo, genreRepo, userRepo)
	giveawaysUseCase := appbook.NewGiveawaysUseCase(bookRepo, catalogCache)
	updateStockUseCase := appbook.NewUpdateStockUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	uploadImageUseCase := appbook.NewUploadImageUseCase(bookService, bookRepo, store)

	searchUseCase := appsearch.NewAdvancedSearchUseCase(bookRepo, authorRepo)
	cartUseCase := appcart.NewCartUseCase(cartRepo, bookRepo)

	checkoutUseCase := apptxn.NewCheckoutUseCase(cartRepo, bookRepo, txnRepo, txManager, publisher)
	historyUseCase := apptxn.NewHistoryUseCase(txnRepo, bookRepo)
	rateUseCase := apptxn.NewRateUseCase(txnRepo, publisher)
	reportUseCase := apptxn.NewReportUseCase(txnRepo, publisher)
	buyUseCase := apptxn.NewBuyUseCase(bookRepo, txnRepo, txManager)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, refreshUseCase, profileUseCase)
	authorHandler := handler.NewAuthorHandler(authorsUseCase)
	genreHandler := handler.NewGenreHandler(manageGenresUseCase)
	bookHandler := handler.NewBookHandler(
		createBookUseCase, listBooksUseCase, sortBooksUseCase, getBookUseCase,
		giveawaysUseCase, updateStockUseCase, deleteBookUseCase, uploadImageUseCase,
	)
	searchHandler := handler.NewSearchHandler(searchUseCase)
	cartHandler := handler.NewCartHandler(cartUseCase)
	txnHandler := handler.NewTransactionHandler(checkoutUseCase, historyUseCase, rateUseCase, reportUseCase, buyUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 9. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID(), middleware.CORS(), middleware.Metrics())

	// 10. 注册路由
	registerRoutes(r, &handlers{
		user:        userHandler,
		author:      authorHandler,
		genre:       genreHandler,
		book:        bookHandler,
		search:      searchHandler,
		cart:        cartHandler,
		transaction: txnHandler,
	}, authMiddleware)

	// 11. 启动服务（支持优雅关闭）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到退出信号，正在关闭服务...")

	// 给在途请求10秒收尾时间
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("关闭服务失败: %v", err)
	}
	log.Println("服务已退出")
}

// handlers 路由注册需要的全部处理器
type handlers struct {
	user        *handler.UserHandler
	author      *handler.AuthorHandler
	genre       *handler.GenreHandler
	book        *handler.BookHandler
	search      *handler.SearchHandler
	cart        *handler.CartHandler
	transaction *handler.TransactionHandler
}

// registerRoutes 注册路由
// 路由分组原则：
// - 目录查询类接口公开（列表/排序/详情/赠书/搜索/分类树/作者）
// - 发布、购物车、交易需要登录
// - 分类树和作者的写操作需要管理员
func registerRoutes(r *gin.Engine, h *handlers, authMiddleware *middleware.AuthMiddleware) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（生产环境建议禁用或加访问控制）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.user.Register)
			auth.POST("/login", h.user.Login)
			auth.POST("/refresh", h.user.RefreshToken)
			auth.POST("/logout", authMiddleware.RequireAuth(), h.user.Logout)
		}

		// 用户模块
		users := v1.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/profile", h.user.GetProfile)
		}

		// 作者模块（查询公开，改名需要管理员）
		authors := v1.Group("/authors")
		{
			authors.GET("", h.author.List)
			authors.GET("/:id", h.author.Get)
			authors.PATCH("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), h.author.Rename)
		}

		// 分类模块（查询公开，写操作需要管理员）
		genres := v1.Group("/genres")
		{
			genres.GET("", h.genre.List)
			genres.GET("/:id/children", h.genre.ListChildren)

			adminGenres := genres.Group("")
			adminGenres.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			{
				adminGenres.POST("", h.genre.CreateRoot)
				adminGenres.POST("/:id/children", h.genre.AddChild)
				adminGenres.DELETE("/:id/children/:childId", h.genre.DetachChild)
				adminGenres.DELETE("/:id", h.genre.DeleteLeaf)
			}
		}

		// 书籍模块（查询公开，发布/修改/下架需要登录）
		books := v1.Group("/books")
		{
			books.GET("", h.book.List)
			books.GET("/pages", h.book.Pages)
			books.GET("/sort", h.book.Sort)
			books.GET("/location", h.book.SortByLocation)
			books.GET("/giveaways", h.book.Giveaways)
			books.GET("/:id", h.book.Get)

			sellerBooks := books.Group("")
			sellerBooks.Use(authMiddleware.RequireAuth())
			{
				sellerBooks.POST("", h.book.Create)
				sellerBooks.PATCH("/:id", h.book.UpdateStock)
				sellerBooks.DELETE("/:id", h.book.Delete)
				sellerBooks.POST("/:id/images", h.book.UploadImage)
			}
		}

		// 高级搜索（公开）
		v1.POST("/search", h.search.Search)

		// 购物车模块（需要登录）
		cart := v1.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			cart.GET("", h.cart.Get)
			cart.POST("/items", h.cart.AddItem)
			cart.PATCH("/items/:id", h.cart.UpdateItem)
			cart.DELETE("/items/:id", h.cart.RemoveItem)
		}

		// 交易模块（需要登录）
		transactions := v1.Group("/transactions")
		transactions.Use(authMiddleware.RequireAuth())
		{
			transactions.POST("/checkout", h.transaction.Checkout)
			transactions.GET("", h.transaction.History)
			transactions.POST("/:id/rate", h.transaction.Rate)
			transactions.POST("/:id/report", h.transaction.Report)
		}

		// 直接购买（旧版客户端接口，需要登录）
		v1.POST("/buy/:bookId", authMiddleware.RequireAuth(), h.transaction.Buy)
	}
}
