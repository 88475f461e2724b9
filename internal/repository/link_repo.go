package repository

import (
	"gorm.io/gorm"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Create(link *model.Link) error {
	return r.db.Create(link).Error
}

func (r *LinkRepository) GetByID(id int64) (*model.Link, error) {
	var link model.Link
	err := r.db.Where("id = ?", id).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ListByUserID 按展示顺序返回用户的全部链接块
func (r *LinkRepository) ListByUserID(userID int64) ([]model.Link, error) {
	var links []model.Link
	err := r.db.Where("user_id = ?", userID).Order("sort_order ASC").Find(&links).Error
	return links, err
}

func (r *LinkRepository) Delete(id int64) error {
	return r.db.Delete(&model.Link{}, id).Error
}
