package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// ============================================================
// OTP Service - phone verification for signup
// ============================================================

// OTP errors
var (
	ErrOTPNotFound      = errors.New("no OTP requested for this phone, request a new one")
	ErrOTPExpired       = errors.New("OTP expired, request a new one")
	ErrOTPTooSoon       = errors.New("please wait 1 minute before requesting a new OTP")
	ErrOTPMaxAttempts   = errors.New("too many wrong attempts, request a new OTP")
	ErrOTPMismatch      = errors.New("incorrect OTP")
	ErrPhoneNotVerified = errors.New("phone number not verified")
)

const (
	otpLength      = 4
	otpTTL         = 5 * time.Minute
	otpResendAfter = 1 * time.Minute
	otpMaxAttempts = 5
)

// OTPEntry represents a single OTP record in memory
type OTPEntry struct {
	Code      string
	Phone     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Attempts  int
	Verified  bool
}

// OTPService handles OTP generation and verification, keyed by phone number.
// Codes live in memory only; an instance restart invalidates outstanding OTPs.
type OTPService struct {
	store map[string]*OTPEntry
	mu    sync.RWMutex
}

// NewOTPService creates a new OTP service
func NewOTPService() *OTPService {
	svc := &OTPService{
		store: make(map[string]*OTPEntry),
	}
	// Cleanup expired OTPs every 5 minutes
	go svc.cleanupLoop()
	return svc
}

// Generate creates a new 4-digit OTP for a phone number.
// Returns the OTP code (to be sent via SMS).
func (s *OTPService) Generate(phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Resend gate: 1 minute between requests for the same phone
	if existing, ok := s.store[phone]; ok {
		if time.Since(existing.CreatedAt) < otpResendAfter {
			return "", ErrOTPTooSoon
		}
	}

	code, err := generateSecureOTP(otpLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := time.Now()
	s.store[phone] = &OTPEntry{
		Code:      code,
		Phone:     phone,
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL),
		Attempts:  0,
		Verified:  false,
	}

	return code, nil
}

// Verify checks if the provided OTP is valid for the phone.
// A failed attempt keeps the entry so the caller can retry; the phone is
// never cleared by a wrong code.
func (s *OTPService) Verify(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store[phone]
	if !ok {
		return ErrOTPNotFound
	}

	if time.Now().After(entry.ExpiresAt) {
		delete(s.store, phone)
		return ErrOTPExpired
	}

	if entry.Attempts >= otpMaxAttempts {
		delete(s.store, phone)
		return ErrOTPMaxAttempts
	}

	entry.Attempts++
	if entry.Code != code {
		return ErrOTPMismatch
	}

	entry.Verified = true
	return nil
}

// IsVerified checks whether the phone has a verified, unexpired OTP
func (s *OTPService) IsVerified(phone string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.store[phone]
	if !ok {
		return false
	}
	return entry.Verified && time.Now().Before(entry.ExpiresAt)
}

// Clear removes the OTP after a successful signup
func (s *OTPService) Clear(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, phone)
}

// cleanupLoop periodically removes expired OTPs
func (s *OTPService) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		s.mu.Lock()
		for key, entry := range s.store {
			if time.Now().After(entry.ExpiresAt) {
				delete(s.store, key)
			}
		}
		s.mu.Unlock()
	}
}

// generateSecureOTP generates a cryptographically secure random OTP
func generateSecureOTP(length int) (string, error) {
	result := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		result += fmt.Sprintf("%d", n.Int64())
	}
	return result, nil
}
