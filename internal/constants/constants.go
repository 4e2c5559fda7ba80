package constants

// 购物车状态常量
const (
	CartStatusActive = "active"
)

// 购物车存储类型
const (
	CartStoreDatabase = "database"
	CartStoreMongo    = "mongo"
)

// 购物车数量校验策略
const (
	QuantityPolicyStrict     = "strict"
	QuantityPolicyPermissive = "permissive"
)

// 商品目录来源
const (
	CatalogSourceDatabase = "database"
	CatalogSourceHTTP     = "http"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列与任务常量
const (
	QueueDefault        = "default"
	TaskCartConsolidate = "cart:consolidate"
)

// DefaultPlatformFee 平台服务费（与价格同单位）
const DefaultPlatformFee = 4

// MaxCatalogResponseBytes 上游目录响应体上限
const MaxCatalogResponseBytes = 8 << 20

// 登录日志结果
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录失败原因
const (
	LoginFailReasonInvalidEmail       = "invalid_email"
	LoginFailReasonInvalidCredentials = "invalid_credentials"
	LoginFailReasonUserDisabled       = "user_disabled"
	LoginFailReasonInternal           = "internal_error"
)
