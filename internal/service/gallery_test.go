package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/gallery/internal/domain"
	"github.com/Skotchmaster/gallery/internal/models"
	"github.com/Skotchmaster/gallery/internal/mykafka"
	"github.com/Skotchmaster/gallery/internal/repo"
	"github.com/Skotchmaster/gallery/internal/session"
	"github.com/Skotchmaster/gallery/internal/transport"
)

type publishedEvent struct {
	topic, key string
	event      map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, key: key, event: event.(map[string]any)})
	return p.err
}

type testEnv struct {
	svc    *GalleryService
	gate   *session.Manager
	events *recordingPublisher
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	rp := &repo.GormRepo{DB: db}
	require.NoError(t, rp.Initialize(context.Background()))

	events := &recordingPublisher{}
	return &testEnv{
		svc:    &GalleryService{Repo: rp, Events: events},
		gate:   session.NewManager(rp, []byte("test-session-secret"), time.Hour),
		events: events,
		db:     db,
	}
}

func (env *testEnv) login(t *testing.T) *session.Session {
	t.Helper()
	s, err := env.gate.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T { return &v }

func vase() transport.CreateProductRequest {
	return transport.CreateProductRequest{Name: "Vase", Price: ptr(int64(500)), Stock: ptr(int64(3)), Image: "vase.png"}
}

func fullContact() transport.ContactRequest {
	return transport.ContactRequest{
		Phone1: ptr("111"), Phone2: ptr("222"), Instagram: ptr("https://instagram.com/x"), Email: ptr("x@example.com"),
	}
}

func TestScenario_LoginAddLogoutDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	products, err := env.svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	contact, err := env.svc.GetContact(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultContact(), *contact)

	s := env.login(t)

	prod, err := env.svc.AddProduct(ctx, s, vase())
	require.NoError(t, err)
	assert.EqualValues(t, 1, prod.ID)

	products, err = env.svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{{ID: 1, Name: "Vase", Price: 500, Stock: 3, Image: "vase.png"}}, products)

	env.gate.Logout(s)

	err = env.svc.DeleteProduct(ctx, s, 1)
	require.ErrorIs(t, err, domain.ErrAuthorization)

	products, err = env.svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestMutations_RequireAuthentication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seed := env.login(t)
	_, err := env.svc.AddProduct(ctx, seed, vase())
	require.NoError(t, err)
	env.gate.Logout(seed)
	env.events.events = nil

	anonymous := []struct {
		name string
		sess *session.Session
	}{
		{name: "no session", sess: nil},
		{name: "logged out session", sess: seed},
	}

	for _, a := range anonymous {
		t.Run(a.name, func(t *testing.T) {
			_, err := env.svc.AddProduct(ctx, a.sess, vase())
			assert.ErrorIs(t, err, domain.ErrAuthorization)

			assert.ErrorIs(t, env.svc.DeleteProduct(ctx, a.sess, 1), domain.ErrAuthorization)

			_, err = env.svc.UpdateContact(ctx, a.sess, fullContact())
			assert.ErrorIs(t, err, domain.ErrAuthorization)

			err = env.svc.UpdateAdminCredential(ctx, a.sess, transport.CredentialRequest{Username: "x", Password: "y"})
			assert.ErrorIs(t, err, domain.ErrAuthorization)

			_, err = env.svc.Dashboard(ctx, a.sess)
			assert.ErrorIs(t, err, domain.ErrAuthorization)
		})
	}

	products, err := env.svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	contact, err := env.svc.GetContact(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultContact(), *contact)

	ok, err := env.svc.Repo.VerifyAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Empty(t, env.events.events)
}

func TestMutations_AfterLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.login(t)

	prod, err := env.svc.AddProduct(ctx, s, vase())
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteProduct(ctx, s, prod.ID))
	require.NoError(t, env.svc.DeleteProduct(ctx, s, 999))

	updated, err := env.svc.UpdateContact(ctx, s, fullContact())
	require.NoError(t, err)
	got, err := env.svc.GetContact(ctx)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	board, err := env.svc.Dashboard(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, board.Products)
	assert.Equal(t, "x@example.com", board.Contact.Email)

	require.NoError(t, env.svc.UpdateAdminCredential(ctx, s, transport.CredentialRequest{Username: "x", Password: "y"}))

	_, err = env.gate.Login(ctx, "admin", "admin123")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	_, err = env.gate.Login(ctx, "x", "y")
	assert.NoError(t, err)
}

func TestEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.login(t)

	prod, err := env.svc.AddProduct(ctx, s, vase())
	require.NoError(t, err)
	require.NoError(t, env.svc.DeleteProduct(ctx, s, prod.ID))
	_, err = env.svc.UpdateContact(ctx, s, fullContact())
	require.NoError(t, err)
	require.NoError(t, env.svc.UpdateAdminCredential(ctx, s, transport.CredentialRequest{Username: "x", Password: "secret"}))

	require.Len(t, env.events.events, 4)

	assert.Equal(t, mykafka.ProductTopic, env.events.events[0].topic)
	assert.Equal(t, "product_created", env.events.events[0].event["type"])
	assert.Equal(t, "Vase", env.events.events[0].event["name"])

	assert.Equal(t, "product_deleted", env.events.events[1].event["type"])
	assert.Equal(t, "1", env.events.events[1].key)

	assert.Equal(t, mykafka.ContactTopic, env.events.events[2].topic)
	assert.Equal(t, "contact_updated", env.events.events[2].event["type"])

	admin := env.events.events[3]
	assert.Equal(t, mykafka.AdminTopic, admin.topic)
	assert.Equal(t, "admin_credential_updated", admin.event["type"])
	assert.NotContains(t, admin.event, "password")
}

func TestEvents_PublishFailureIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.events.err = errors.New("broker down")
	s := env.login(t)

	prod, err := env.svc.AddProduct(context.Background(), s, vase())
	require.NoError(t, err)
	assert.EqualValues(t, 1, prod.ID)
}

func TestNilEventsPublisher(t *testing.T) {
	env := newTestEnv(t)
	env.svc.Events = nil
	s := env.login(t)

	_, err := env.svc.AddProduct(context.Background(), s, vase())
	require.NoError(t, err)
}

func TestAddProduct_ValidationAfterAuthorization(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)

	_, err := env.svc.AddProduct(context.Background(), s, transport.CreateProductRequest{Name: "Vase"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.AddProduct(context.Background(), nil, transport.CreateProductRequest{Name: "Vase"})
	assert.ErrorIs(t, err, domain.ErrAuthorization)
}

func TestGallery(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.login(t)

	for _, name := range []string{"a", "b", "c"} {
		req := vase()
		req.Name = name
		_, err := env.svc.AddProduct(ctx, s, req)
		require.NoError(t, err)
	}
	env.gate.Logout(s)

	g, err := env.svc.Gallery(ctx)
	require.NoError(t, err)
	require.Len(t, g.Products, 3)
	assert.Equal(t, "c", g.Products[0].Name)
	assert.Equal(t, "a", g.Products[2].Name)
	assert.Equal(t, models.DefaultContact(), *g.Contact)
}
