package cron

import (
	"log"
	"time"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/repository"
)

// Service 周期性清理过期未使用的邮箱验证令牌
type Service struct {
	userRepo *repository.UserRepository
	interval time.Duration
	stopChan chan struct{}
}

func NewService(userRepo *repository.UserRepository, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		userRepo: userRepo,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.run()
	log.Println("Cron service started (verification token sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Service) sweep() {
	cleared, err := s.userRepo.ClearExpiredVerificationTokens(time.Now())
	if err != nil {
		log.Printf("Verification token sweep failed: %v", err)
		return
	}
	if cleared > 0 {
		log.Printf("Verification token sweep: cleared %d expired tokens", cleared)
	}
}

// RunNow 立即执行一次清理（用于测试或手动触发）
func (s *Service) RunNow() error {
	_, err := s.userRepo.ClearExpiredVerificationTokens(time.Now())
	return err
}
