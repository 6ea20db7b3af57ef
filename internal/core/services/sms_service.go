package services

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SMSService handles sending SMS messages via AWS SNS
type SMSService struct {
	client  *sns.Client
	enabled bool
}

// NewSMSService creates a new SMS service client
func NewSMSService(cfg aws.Config, enabled bool) *SMSService {
	return &SMSService{
		client:  sns.NewFromConfig(cfg),
		enabled: enabled,
	}
}

// SendOTP sends a signup verification code to a 10-digit Indian phone number
func (s *SMSService) SendOTP(ctx context.Context, phone, code string) error {
	message := fmt.Sprintf("Your ScrapSeva verification code is %s. It expires in 5 minutes.", code)
	return s.send(ctx, "+91"+phone, message)
}

// send publishes an SMS. The phone number must be in E.164 format.
func (s *SMSService) send(ctx context.Context, phoneNumber, message string) error {
	if !s.enabled {
		log.Printf("📱 SMS disabled, message for %s: %s", phoneNumber, message)
		return nil
	}

	// Transactional type so verification codes bypass promotional throttles
	messageAttributes := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}

	input := &sns.PublishInput{
		Message:           aws.String(message),
		PhoneNumber:       aws.String(phoneNumber),
		MessageAttributes: messageAttributes,
	}

	result, err := s.client.Publish(ctx, input)
	if err != nil {
		log.Printf("⚠️ Failed to send SMS to %s: %v", phoneNumber, err)
		return err
	}

	log.Printf("✅ SMS sent, message ID: %s", *result.MessageId)
	return nil
}
