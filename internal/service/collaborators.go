package service

import (
	"context"

	"shopbackend/internal/models"
)

// Mailer sends the two transactional mails the auth flow produces.
type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
	SendOTP(ctx context.Context, to, otp string) error
}

// Publisher emits domain events. Publish failures never fail the request
// that produced them.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event map[string]any) error
}

// Indexer mirrors product documents into the search index.
type Indexer interface {
	Index(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
