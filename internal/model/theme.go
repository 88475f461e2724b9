package model

// ThemeConfig 个人页的主题配置。每个子区块由前端编辑器维护，
// 服务端不感知内部结构，PATCH 时整体替换而非深合并。
type ThemeConfig struct {
	Background    map[string]interface{} `json:"background,omitempty"`
	Cursor        map[string]interface{} `json:"cursor,omitempty"`
	Typography    map[string]interface{} `json:"typography,omitempty"`
	Motion        map[string]interface{} `json:"motion,omitempty"`
	FrameOverlay  map[string]interface{} `json:"frameOverlay,omitempty"`
	Animations    map[string]interface{} `json:"animations,omitempty"`
	EntranceMode  string                 `json:"entranceMode,omitempty"`
	ScreenEffects map[string]interface{} `json:"screenEffects,omitempty"`
}

// Geometry 卡片几何参数
type Geometry struct {
	Radius  float64 `json:"radius"`
	Blur    float64 `json:"blur"`
	Opacity float64 `json:"opacity"`
}

// SocialLink 社交平台链接
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// DefaultThemeConfig 新账号的默认主题
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Background: map[string]interface{}{
			"type":  "color",
			"value": "#0a0a0a",
		},
		Typography: map[string]interface{}{
			"font": "inter",
		},
		Motion: map[string]interface{}{
			"reduced": false,
		},
		EntranceMode: "fade",
	}
}

// DefaultGeometry 新账号的默认卡片几何参数
func DefaultGeometry() Geometry {
	return Geometry{Radius: 16, Blur: 8, Opacity: 0.85}
}
