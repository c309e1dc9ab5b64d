package dto

// ==================== 商家设置 ====================

// UpdateHomepagesRequest 更新店面主页请求
type UpdateHomepagesRequest struct {
	Homepage        string `json:"homepage" binding:"omitempty,max=512"`
	EtsyHomepage    string `json:"etsyHomepage" binding:"omitempty,max=512"`
	ShopifyHomepage string `json:"shopifyHomepage" binding:"omitempty,max=512"`
	SquareHomepage  string `json:"squareHomepage" binding:"omitempty,max=512"`
}

// PlatformSettingsPayload 单平台导入配置
type PlatformSettingsPayload struct {
	IncludeTags       []string                   `json:"includeTags"`
	ExcludeTags       []string                   `json:"excludeTags"`
	DepartmentMapping []DepartmentMappingPayload `json:"departmentMapping"`
}

type DepartmentMappingPayload struct {
	Key         string   `json:"key" binding:"required,max=255"`
	Departments []string `json:"departments"`
}

// UpdateUploadSettingsRequest 更新导入配置请求
type UpdateUploadSettingsRequest struct {
	Etsy    *PlatformSettingsPayload `json:"etsy"`
	Shopify *PlatformSettingsPayload `json:"shopify"`
}

// UpdateLogoRequest 更新 Logo 请求，图片为 data URL 形式的 Base64
type UpdateLogoRequest struct {
	Image string `json:"image" binding:"required"`
}

// UpdateDepartmentsRequest 更新部门分类请求
type UpdateDepartmentsRequest struct {
	Departments []string `json:"departments" binding:"required"`
}

// BusinessInfo 商家信息
type BusinessInfo struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Latitude      string   `json:"latitude"`
	Longitude     string   `json:"longitude"`
	LogoURL       string   `json:"logo_url"`
	Departments   []string `json:"departments"`
	NextProductID int64    `json:"next_product_id"`
}

// ==================== 导入任务 ====================

// ImportJobInfo 导入任务状态
type ImportJobInfo struct {
	ID            string `json:"id"`
	BusinessID    int64  `json:"business_id"`
	Source        string `json:"source"`
	Status        string `json:"status"`
	PagesFetched  int    `json:"pages_fetched"`
	ItemsSeen     int    `json:"items_seen"`
	ItemsAccepted int    `json:"items_accepted"`
	Error         string `json:"error,omitempty"`
	StartedAt     string `json:"started_at,omitempty"`
	FinishedAt    string `json:"finished_at,omitempty"`
}
