package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	// 注意：这里使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&AuthorModel{},
		&GenreModel{},
		&BookModel{},
		&CartModel{},
		&TransactionModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 主键是应用层生成的24位十六进制ID（不用自增，便于分库和离线生成）
type UserModel struct {
	ID        string         `gorm:"primaryKey;size:24"`
	Username  string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	IsAdmin   bool           `gorm:"default:false;comment:是否管理员"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// AuthorModel GORM作者模型
// Name有唯一索引：按名字find-or-create的并发安全由该索引兜底
type AuthorModel struct {
	ID        string    `gorm:"primaryKey;size:24"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:作者名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// GenreModel GORM分类模型
// 设计说明:
// 1. Children存子分类ID数组,用GORM的JSON序列化器落到JSON列
// 2. 树形结构只记录父→子方向,配合IsParent标记即可完成全部树操作
type GenreModel struct {
	ID        string    `gorm:"primaryKey;size:24"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:分类名"`
	Children  []string  `gorm:"serializer:json;type:json;comment:子分类ID列表"`
	IsParent  bool      `gorm:"default:false;comment:是否有子分类"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (GenreModel) TableName() string {
	return "genres"
}

// BookModel GORM书籍模型
// 设计说明:
// 1. Genres/Authors/Tags/Images都是JSON列(serializer:json)
// 2. 卖家+书名复合唯一索引:同一卖家不能重复发布同名书
// 3. 坐标拆成两列可空float,空值表示卖家未填位置
// 4. UnitPrice加索引支撑价格区间查询和赠书列表(unit_price=0)
type BookModel struct {
	ID            string         `gorm:"primaryKey;size:24"`
	Name          string         `gorm:"uniqueIndex:idx_seller_name;size:200;not null;comment:书名"`
	Genres        []string       `gorm:"serializer:json;type:json;comment:分类ID列表"`
	Authors       []string       `gorm:"serializer:json;type:json;comment:作者ID列表"`
	Quantity      int            `gorm:"default:0;comment:库存数量"`
	UnitPrice     float64        `gorm:"index;not null;comment:单价(0表示赠送)"`
	BookCondition string         `gorm:"size:10;not null;comment:成色(used/unused)"`
	SellerID      string         `gorm:"uniqueIndex:idx_seller_name;index;size:24;not null;comment:卖家ID"`
	Tags          []string       `gorm:"serializer:json;type:json;comment:标签(小写)"`
	Description   string         `gorm:"type:text;comment:描述"`
	Images        []string       `gorm:"serializer:json;type:json;comment:图片URL列表"`
	Latitude      *float64       `gorm:"comment:卖家纬度"`
	Longitude     *float64       `gorm:"comment:卖家经度"`
	CreatedAt     time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CartModel GORM购物车模型
// 设计说明:
// 1. OwnerID唯一索引:每个买家最多一个购物车
// 2. 条目作为JSON列整体存储,读改写都以购物车为单位
type CartModel struct {
	ID        string    `gorm:"primaryKey;size:24"`
	OwnerID   string    `gorm:"uniqueIndex;size:24;not null;comment:买家ID"`
	Items     string    `gorm:"type:json;comment:条目JSON"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartModel) TableName() string {
	return "carts"
}

// TransactionModel GORM交易模型
// 设计说明:
// 1. Books是结账瞬间的书籍ID快照(JSON列)
// 2. Rating为0表示未评分,ReportText为空表示未报告
// 3. 交易记录不做软删除:历史不可抹去
type TransactionModel struct {
	ID              string    `gorm:"primaryKey;size:24"`
	BuyerID         string    `gorm:"index;size:24;not null;comment:买家ID"`
	Books           []string  `gorm:"serializer:json;type:json;comment:书籍ID快照"`
	Total           float64   `gorm:"not null;comment:总金额"`
	PaymentMethod   string    `gorm:"size:50;comment:支付方式"`
	DeliveryType    string    `gorm:"size:50;comment:配送方式"`
	DeliveryAddress string    `gorm:"size:255;comment:配送地址"`
	Rating          int       `gorm:"default:0;comment:评分(0表示未评分)"`
	ReportText      string    `gorm:"type:text;comment:问题报告"`
	CreatedAt       time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (TransactionModel) TableName() string {
	return "transactions"
}
