package constants

// 商品库存状态常量
const (
	ProductStatusAvailable  = "available"
	ProductStatusOutOfStock = "out_of_stock"
	ProductStatusBackorder  = "backorder"
)

// ProductStatuses 可选商品状态
var ProductStatuses = []string{ProductStatusAvailable, ProductStatusOutOfStock, ProductStatusBackorder}

// 商品排序常量
const (
	ProductOrderingDefault    = ""
	ProductOrderingPriceAsc   = "price"
	ProductOrderingPriceDesc  = "-price"
	ProductOrderingNewest     = "-created_at"
	ProductOrderingRatingDesc = "-rating"
)

// 评价分值常量
const (
	ReviewScoreMin = 1
	ReviewScoreMax = 5
)

// 商品评分上限
const (
	ProductRatingMax = 5
)

// 性别常量
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// 资料默认值常量
const (
	ProfileDefaultCountry = "O'zbekiston"
)

// 字段长度限制常量
const (
	CategoryNameMaxLen     = 100
	ProductNameMaxLen      = 200
	ProductSlugMaxLen      = 200
	ProductShortDescMaxLen = 300
	ProfileBioMaxLen       = 500
	ProfilePhoneMaxLen     = 20
	ProfileCityMaxLen      = 100
	ProfileCountryMaxLen   = 100
	ProfileWebsiteMaxLen   = 500
	UsernameMaxLen         = 150
)

// 分页默认值常量
const (
	CatalogPageSizeDefault    = 12
	CatalogHomeListDefault    = 8
	CatalogSimilarSizeDefault = 4
	SlugMaxAttemptsDefault    = 100
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
	CaptchaSceneReview   = "review"
)

// 队列常量
const (
	QueueDefault             = "default"
	QueueLow                 = "low"
	TaskRatingRecompute      = "catalog:rating_recompute"
	TaskSearchIndexProduct   = "search:index_product"
	TaskSearchDeleteProduct  = "search:delete_product"
	TaskSearchReindexCatalog = "search:reindex"
)

// 目录事件类型常量
const (
	EventProductCreated    = "product_created"
	EventProductUpdated    = "product_updated"
	EventProductDeleted    = "product_deleted"
	EventReviewSubmitted   = "review_submitted"
	EventReviewUpdated     = "review_updated"
	EventReviewApproved    = "review_approved"
	EventReviewRejected    = "review_rejected"
	EventReviewDeleted     = "review_deleted"
	EventAccountRegistered = "account_registered"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "shablon"
)

// 站点语言常量
const (
	LocaleUz   = "uz"
	LocaleEnUS = "en-US"
	LocaleRu   = "ru"
)

// SupportedLocales 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleUz, LocaleEnUS, LocaleRu}
