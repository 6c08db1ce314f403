package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"shopbackend/internal/models"
	"shopbackend/internal/repo"
)

var testSecret = []byte("test-jwt-secret")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return &repo.GormRepo{DB: db}
}

type sentMail struct {
	To    string
	Token string
	OTP   string
}

type fakeMailer struct {
	verifications []sentMail
	otps          []sentMail
	err           error
}

func (m *fakeMailer) SendVerification(ctx context.Context, to, token string) error {
	if m.err != nil {
		return m.err
	}
	m.verifications = append(m.verifications, sentMail{To: to, Token: token})
	return nil
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, otp string) error {
	if m.err != nil {
		return m.err
	}
	m.otps = append(m.otps, sentMail{To: to, OTP: otp})
	return nil
}

type fakePublisher struct {
	events []map[string]any
}

func (p *fakePublisher) Publish(ctx context.Context, topic, key string, event map[string]any) error {
	p.events = append(p.events, event)
	return nil
}

type fakeIndexer struct {
	indexed []string
	deleted []string
}

func (i *fakeIndexer) Index(ctx context.Context, product *models.Product) error {
	i.indexed = append(i.indexed, product.ID)
	return nil
}

func (i *fakeIndexer) Delete(ctx context.Context, id string) error {
	i.deleted = append(i.deleted, id)
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeMailer) {
	t.Helper()

	mailer := &fakeMailer{}
	svc := &AuthService{
		Repo:      newTestRepo(t),
		Mail:      mailer,
		Producer:  &fakePublisher{},
		JWTSecret: testSecret,
	}
	return svc, mailer
}

func newTestCartService(t *testing.T) *CartService {
	t.Helper()

	return &CartService{
		Repo:     newTestRepo(t),
		Producer: &fakePublisher{},
	}
}

func newTestCatalogService(t *testing.T) (*CatalogService, *fakeIndexer) {
	t.Helper()

	indexer := &fakeIndexer{}
	return &CatalogService{
		Repo:     newTestRepo(t),
		Index:    indexer,
		Producer: &fakePublisher{},
	}, indexer
}
