package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/repository"
)

var (
	ErrLinkNotFound = errors.New("Link not found")
	ErrNotLinkOwner = errors.New("You do not own this link")
)

type LinkService struct {
	linkRepo *repository.LinkRepository
}

func NewLinkService(linkRepo *repository.LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

// Create 创建链接块，归属当前会话用户
func (s *LinkService) Create(userID int64, req *dto.CreateLinkRequest) (*model.Link, error) {
	link := &model.Link{
		UserID:    userID,
		Title:     req.Title,
		URL:       req.URL,
		Icon:      req.Icon,
		SortOrder: req.Order,
	}

	if err := s.linkRepo.Create(link); err != nil {
		return nil, err
	}

	return link, nil
}

// List 按展示顺序列出用户的链接块
func (s *LinkService) List(userID int64) ([]model.Link, error) {
	return s.linkRepo.ListByUserID(userID)
}

// Delete 删除链接块。归属校验先于删除，非本人链接拒绝且不落库。
func (s *LinkService) Delete(userID, linkID int64) error {
	link, err := s.linkRepo.GetByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		return err
	}

	if link.UserID != userID {
		return ErrNotLinkOwner
	}

	return s.linkRepo.Delete(linkID)
}
