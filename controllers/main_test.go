package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Kariqs/farmlink-api/aiflows"
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/Kariqs/farmlink-api/events"
	"github.com/Kariqs/farmlink-api/initializers"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/Kariqs/farmlink-api/routes"
	"github.com/Kariqs/farmlink-api/stores"
	"github.com/Kariqs/farmlink-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type publishedEvent struct {
	Topic   string
	Key     string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.Topic)
	}
	return topics
}

type fakeUploader struct {
	keys []string
	body []byte
}

func (u *fakeUploader) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	u.keys = append(u.keys, key)
	u.body = data
	return "https://cdn.example.com/" + key, nil
}

// fakeGenerator answers every prompt with answer and remembers the prompts.
type fakeGenerator struct {
	mu      sync.Mutex
	answer  string
	err     error
	prompts []string
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, _, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.answer, g.err
}

type harness struct {
	t         *testing.T
	server    *gin.Engine
	users     *stores.UserStore
	products  *stores.ProductStore
	orders    *controllers.OrderController
	publisher *recordingPublisher
	uploader  *fakeUploader
	generator *fakeGenerator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithPublisher(t, &recordingPublisher{})
}

func newHarnessWithPublisher(t *testing.T, publisher events.Publisher) *harness {
	t.Helper()
	db, err := initializers.ConnectToDB(initializers.Config{
		DBDriver: "sqlite",
		DBURL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	require.NoError(t, initializers.SyncDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	h := &harness{
		t:         t,
		server:    gin.New(),
		users:     stores.NewUserStore(db),
		products:  stores.NewProductStore(db),
		uploader:  &fakeUploader{},
		generator: &fakeGenerator{},
	}
	ratings := stores.NewRatingStore(db)
	notifications := stores.NewNotificationStore(db)
	runner := aiflows.NewRunner(h.generator, aiflows.NewMemoryCache(), time.Minute)
	if recorder, ok := publisher.(*recordingPublisher); ok {
		h.publisher = recorder
	}
	h.orders = controllers.NewOrderController(stores.NewOrderStore(db), h.users, publisher, nil)
	t.Cleanup(h.orders.Wait)

	routes.Register(h.server, routes.Handlers{
		Auth:          controllers.NewAuthController(h.users, testSecret, time.Hour),
		Products:      controllers.NewProductController(h.products, ratings, h.uploader),
		Cart:          controllers.NewCartController(stores.NewCartStore(db)),
		Orders:        h.orders,
		Ratings:       controllers.NewRatingController(ratings),
		Notifications: controllers.NewNotificationController(notifications),
		AI:            controllers.NewAIController(runner, notifications),
	}, routes.Options{JWTSecret: testSecret, AIRateLimit: 100})
	return h
}

// account creates a user and returns a bearer token for it.
func (h *harness) account(role, name string) (models.User, string) {
	h.t.Helper()
	user := models.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "unused",
		Role:     role,
	}
	if role == models.RoleFarmer {
		user.Location = "Nakuru"
	}
	user, err := h.users.Create(context.Background(), user)
	require.NoError(h.t, err)
	token, err := utils.GenerateToken(user, testSecret, time.Hour)
	require.NoError(h.t, err)
	return user, token
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.server.ServeHTTP(w, req)
	return w
}

// createProduct lists a product through the API as the given farmer.
func (h *harness) createProduct(token, name string, price float64, quantity int) models.Product {
	h.t.Helper()
	w := h.do(http.MethodPost, "/products", token, gin.H{
		"name":     name,
		"price":    price,
		"unit":     "kg",
		"quantity": quantity,
		"category": "Vegetables",
		"location": "Nakuru",
	})
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	decode(h.t, w, &product)
	return product
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
