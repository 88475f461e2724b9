package model

import (
	"time"
)

// Link 个人页上的一个链接块，归属于唯一用户
type Link struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null;constraint:OnDelete:CASCADE" json:"user_id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	Icon      string    `gorm:"size:50" json:"icon"`
	SortOrder int       `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Link) TableName() string {
	return "links"
}
