package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"tumaBack/internal/repositories"
)

// NotificationService delivers FCM pushes for booking and message
// events. Delivery failures never propagate to the triggering request;
// they are logged and dropped.
type NotificationService struct {
	Client   *messaging.Client
	UserRepo *repositories.UserRepository
}

func (s *NotificationService) Push(ctx context.Context, userID int, title, body string, data map[string]string) error {
	if s.Client == nil {
		return nil
	}
	tokens, err := s.UserRepo.GetPushTokens(ctx, userID)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: title,
							Body:  body,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := s.Client.Send(ctx, msg); err != nil {
			log.Printf("push to user %d token %q failed: %v", userID, token, err)
		}
	}
	return nil
}
