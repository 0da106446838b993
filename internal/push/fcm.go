package push

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// fcmGateway implements Gateway on top of Firebase Cloud Messaging.
type fcmGateway struct {
	client *messaging.Client
}

// NewFCMGateway initializes the Firebase app from a service-account
// credentials file and returns a multicast-capable gateway.
func NewFCMGateway(ctx context.Context, credentialsFile string) (Gateway, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("FCM gateway initialized.")
	return &fcmGateway{client: client}, nil
}

// SendMulticast delivers msg to up to MaxTokensPerCall tokens in one call.
func (g *fcmGateway) SendMulticast(ctx context.Context, tokens []string, msg Message) (*BatchResponse, error) {
	if len(tokens) == 0 {
		return &BatchResponse{}, nil
	}
	if len(tokens) > MaxTokensPerCall {
		return nil, errors.New("token batch exceeds FCM multicast limit")
	}

	multicast := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	}

	resp, err := g.client.SendEachForMulticast(ctx, multicast)
	if err != nil {
		return nil, fmt.Errorf("fcm multicast failed: %w", err)
	}

	batch := &BatchResponse{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Results:      make([]TokenResult, len(resp.Responses)),
	}
	for i, r := range resp.Responses {
		result := TokenResult{Token: tokens[i], Success: r.Success}
		if r.Error != nil {
			result.Error = r.Error.Error()
		}
		batch.Results[i] = result
	}
	return batch, nil
}
