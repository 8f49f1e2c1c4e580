package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"uybor/internal/bot"
	"uybor/internal/bot/channel"
	"uybor/internal/bot/collector"
	"uybor/internal/bot/session"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
	"uybor/internal/shared/config"
)

// testAdminID is the admin configured for every test environment.
const testAdminID int64 = 999

// --- Mocks ---

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) UpdateLanguage(ctx context.Context, telegramID int64, lang domain.Language) error {
	args := m.Called(ctx, telegramID, lang)
	return args.Error(0)
}
func (m *MockUserRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}

// MockListingRepository
type MockListingRepository struct {
	mock.Mock
}

var _ ports.ListingRepository = (*MockListingRepository)(nil)

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) ListPublic(ctx context.Context, filter ports.ListingFilter) ([]*domain.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) ListPending(ctx context.Context) ([]*domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) Approve(ctx context.Context, id int64, adminID int64, now time.Time) error {
	args := m.Called(ctx, id, adminID, now)
	return args.Error(0)
}
func (m *MockListingRepository) Decline(ctx context.Context, id int64, adminID int64, feedback string) error {
	args := m.Called(ctx, id, adminID, feedback)
	return args.Error(0)
}
func (m *MockListingRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}
func (m *MockListingRepository) SetPremium(ctx context.Context, id int64, premium bool) error {
	args := m.Called(ctx, id, premium)
	return args.Error(0)
}
func (m *MockListingRepository) SetChannelMessage(ctx context.Context, id int64, messageID int) error {
	args := m.Called(ctx, id, messageID)
	return args.Error(0)
}
func (m *MockListingRepository) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
func (m *MockListingRepository) Stats(ctx context.Context) (*ports.ListingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ListingStats), args.Error(1)
}
func (m *MockListingRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockFavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

var _ ports.FavoriteRepository = (*MockFavoriteRepository)(nil)

func (m *MockFavoriteRepository) Add(ctx context.Context, userID uuid.UUID, listingID int64) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockFavoriteRepository) Remove(ctx context.Context, userID uuid.UUID, listingID int64) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}
func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockFavoriteRepository) UsersForListing(ctx context.Context, listingID int64) ([]int64, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockRegionRepository
type MockRegionRepository struct {
	mock.Mock
}

var _ ports.RegionRepository = (*MockRegionRepository)(nil)

func (m *MockRegionRepository) ListRegions(ctx context.Context) ([]*domain.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Region), args.Error(1)
}
func (m *MockRegionRepository) GetRegion(ctx context.Context, key string) (*domain.Region, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}
func (m *MockRegionRepository) ListDistricts(ctx context.Context, regionKey string) ([]*domain.District, error) {
	args := m.Called(ctx, regionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.District), args.Error(1)
}
func (m *MockRegionRepository) GetDistrict(ctx context.Context, regionKey, key string) (*domain.District, error) {
	args := m.Called(ctx, regionKey, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.District), args.Error(1)
}

// MockBotClient
type MockBotClient struct {
	mock.Mock
}

var _ ports.BotClient = (*MockBotClient)(nil)

func (m *MockBotClient) SendMessage(ctx context.Context, params ports.SendMessageParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}
func (m *MockBotClient) SendPhoto(ctx context.Context, params ports.SendPhotoParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}
func (m *MockBotClient) SendMediaGroup(ctx context.Context, params ports.SendMediaGroupParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}
func (m *MockBotClient) EditMessageText(ctx context.Context, params ports.EditMessageParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
func (m *MockBotClient) AnswerCallbackQuery(ctx context.Context, params ports.AnswerCallbackParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
func (m *MockBotClient) SetMenuCommands(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingBus is a synchronous EventBus: handlers run inline and every
// publish is recorded, so tests can assert on exactly what was published
// without racing goroutines.
type recordingBus struct {
	mu        sync.Mutex
	published []ports.Event
	handlers  map[string][]ports.EventHandler
}

var _ ports.EventBus = (*recordingBus)(nil)

func newRecordingBus() *recordingBus {
	return &recordingBus{handlers: make(map[string][]ports.EventHandler)}
}

func (b *recordingBus) Publish(ctx context.Context, topic string, data interface{}) error {
	b.mu.Lock()
	event := ports.Event{Topic: topic, Data: data}
	b.published = append(b.published, event)
	handlers := b.handlers[topic]
	b.mu.Unlock()

	for _, h := range handlers {
		h(ctx, event)
	}
	return nil
}

func (b *recordingBus) Subscribe(topic string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

func (b *recordingBus) eventsFor(topic string) []ports.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []ports.Event
	for _, e := range b.published {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

// --- Test environment ---

type testEnv struct {
	deps      *bot.Deps
	users     *MockUserRepository
	listings  *MockListingRepository
	favorites *MockFavoriteRepository
	regions   *MockRegionRepository
	botClient *MockBotClient
	bus       *recordingBus
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/uybor_test")
	t.Setenv("ADMIN_IDS", "999")
	t.Setenv("CHANNEL_ID", "-100200300")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() failed: %v", err)
	}

	nopLogger := zerolog.Nop()
	env := &testEnv{
		users:     new(MockUserRepository),
		listings:  new(MockListingRepository),
		favorites: new(MockFavoriteRepository),
		regions:   new(MockRegionRepository),
		botClient: new(MockBotClient),
		bus:       newRecordingBus(),
	}
	env.deps = &bot.Deps{
		Cfg:       cfg,
		Users:     env.users,
		Listings:  env.listings,
		Favorites: env.favorites,
		Regions:   env.regions,
		Bot:       env.botClient,
		Bus:       env.bus,
		Sessions:  session.NewStore(session.DefaultTTL, &nopLogger),
		Collector: collector.New(10*time.Millisecond, &nopLogger),
		Publisher: channel.NewPublisher(env.botClient, cfg.ChannelID, &nopLogger),
		Log:       &nopLogger,
	}
	return env
}

func testUser(lang domain.Language) *domain.User {
	return &domain.User{
		ID:         uuid.New(),
		TelegramID: 789,
		Language:   lang,
	}
}

func testRegion() *domain.Region {
	return &domain.Region{ID: 1, Key: "tashkent_city", NameUz: "Toshkent", NameRu: "Ташкент", NameEn: "Tashkent", IsActive: true}
}

func testDistrict() *domain.District {
	return &domain.District{ID: 1, RegionKey: "tashkent_city", Key: "chilonzor", NameUz: "Chilonzor", NameRu: "Чиланзар", NameEn: "Chilanzar", IsActive: true}
}
