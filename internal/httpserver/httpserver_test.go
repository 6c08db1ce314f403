package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopbackend/internal/models"
	"shopbackend/internal/repo"
	"shopbackend/internal/service"
)

var testSecret = []byte("test-jwt-secret")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}))
	return &repo.GormRepo{DB: db}
}

type noopMailer struct{}

func (noopMailer) SendVerification(ctx context.Context, to, token string) error { return nil }
func (noopMailer) SendOTP(ctx context.Context, to, otp string) error            { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, topic, key string, event map[string]any) error {
	return nil
}

type noopIndexer struct{}

func (noopIndexer) Index(ctx context.Context, product *models.Product) error { return nil }
func (noopIndexer) Delete(ctx context.Context, id string) error              { return nil }

func newAuthHTTP(t *testing.T) *AuthHTTP {
	t.Helper()

	return &AuthHTTP{Svc: &service.AuthService{
		Repo:      newTestRepo(t),
		Mail:      noopMailer{},
		Producer:  noopPublisher{},
		JWTSecret: testSecret,
	}}
}

func newCartHTTP(t *testing.T) *CartHTTP {
	t.Helper()

	return &CartHTTP{Svc: &service.CartService{
		Repo:     newTestRepo(t),
		Producer: noopPublisher{},
	}}
}

func newProductHTTP(t *testing.T) *ProductHTTP {
	t.Helper()

	return &ProductHTTP{Svc: &service.CatalogService{
		Repo:     newTestRepo(t),
		Index:    noopIndexer{},
		Producer: noopPublisher{},
	}}
}

// jsonContext builds an echo context carrying a JSON body, mirroring how the
// router delivers requests to handlers.
func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func asUser(c echo.Context, user *models.User) {
	c.Set("user", user)
}

func registerUser(t *testing.T, h *AuthHTTP, name, email, password string) {
	t.Helper()

	c, rec := jsonContext(t, http.MethodPost, "/api/user/register",
		`{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)
}
