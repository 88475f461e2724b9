package dto

// CreateLinkRequest 创建链接块请求
type CreateLinkRequest struct {
	Title string `json:"title" binding:"required,max=100"`
	URL   string `json:"url" binding:"required,url,max=500"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
	Order int    `json:"order"`
}

// LinkInfo 链接块信息
type LinkInfo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}
