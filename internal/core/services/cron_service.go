package services

import (
	"context"
	"log"
	"time"

	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled housekeeping jobs:
// nightly token purge and the morning pickup reminder.
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	resetTokenRepo   repositories.ResetTokenRepository
	donationRepo     repositories.DonationRepository
	notificationSvc  *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	resetTokenRepo repositories.ResetTokenRepository,
	donationRepo repositories.DonationRepository,
	notificationSvc *NotificationService,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		resetTokenRepo:   resetTokenRepo,
		donationRepo:     donationRepo,
		notificationSvc:  notificationSvc,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	// 02:00 every day: purge dead tokens
	if _, err := s.cron.AddFunc("0 2 * * *", s.purgeTokens); err != nil {
		return err
	}

	// 07:00 every day: remind donors and dealers of today's pickups
	if _, err := s.cron.AddFunc("0 7 * * *", s.sendPickupReminders); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron scheduler stopped")
}

func (s *CronService) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	refresh, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Refresh token purge failed: %v", err)
	}

	reset, err := s.resetTokenRepo.DeleteStale(ctx)
	if err != nil {
		log.Printf("❌ Reset token purge failed: %v", err)
	}

	log.Printf("✅ Token purge: %d refresh, %d reset tokens removed", refresh, reset)
}

func (s *CronService) sendPickupReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	donations, err := s.donationRepo.ListForPickupDate(ctx, today, string(domain.DonationAssigned))
	if err != nil {
		log.Printf("❌ Pickup reminder query failed: %v", err)
		return
	}

	for _, d := range donations {
		s.notificationSvc.NotifyPickupReminder(d)
	}

	if len(donations) > 0 {
		log.Printf("📱 Sent pickup reminders for %d donations", len(donations))
	}
}
