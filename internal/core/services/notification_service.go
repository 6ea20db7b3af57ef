package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/config"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

// Notifier sends push notifications to a user's registered devices.
// Delivery is fire-and-forget; there are no retries and no delivery
// guarantees.
type Notifier interface {
	SendToUser(userID uint, title, body string, data map[string]string)
}

// NotificationService sends push notifications via Firebase Cloud Messaging
type NotificationService struct {
	serverKey  string
	enabled    bool
	deviceRepo repositories.DeviceTokenRepository
	client     *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.Config, deviceRepo repositories.DeviceTokenRepository) *NotificationService {
	key := cfg.Notify.FCMServerKey
	return &NotificationService{
		serverKey:  key,
		enabled:    key != "",
		deviceRepo: deviceRepo,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if push notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// fcmMessage is the legacy FCM HTTP payload
type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// sendPush posts one message to FCM
func (s *NotificationService) sendPush(token, title, body string, data map[string]string) error {
	if !s.enabled {
		return nil
	}

	payload, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", fcmSendURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		// Token is stale, drop it
		s.deviceRepo.DeleteByToken(context.Background(), token)
	}

	return nil
}

// SendToUser pushes a notification to every device registered by a user
func (s *NotificationService) SendToUser(userID uint, title, body string, data map[string]string) {
	if !s.enabled {
		return
	}

	tokens, err := s.deviceRepo.GetByUserID(context.Background(), userID)
	if err != nil {
		log.Printf("⚠️ Failed to load device tokens for user %d: %v", userID, err)
		return
	}

	for _, t := range tokens {
		if err := s.sendPush(t.Token, title, body, data); err != nil {
			log.Printf("⚠️ Push to user %d failed: %v", userID, err)
		}
	}
}

// NotifyPickupReminder reminds donor and dealer of today's pickup
func (s *NotificationService) NotifyPickupReminder(donation *models.Donation) {
	body := fmt.Sprintf("Pickup #%d (%s) is scheduled today at %s", donation.ID, donation.ScrapType, donation.PickupTime)
	s.SendToUser(donation.DonorID, "Pickup today", body, nil)
	if donation.DealerID != nil {
		s.SendToUser(*donation.DealerID, "Pickup today", body, nil)
	}
}
