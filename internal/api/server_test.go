package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
	"uybor/internal/shared/config"
)

// --- Mocks ---

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

type MockPaymentRepository struct {
	mock.Mock
}

var _ ports.PaymentRepository = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepository) Complete(ctx context.Context, id uuid.UUID, transactionID string, now time.Time) error {
	args := m.Called(ctx, id, transactionID, now)
	return args.Error(0)
}
func (m *MockPaymentRepository) Close(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// nopBus discards events; API tests assert on repositories, not fan-out.
type nopBus struct{}

func (nopBus) Publish(ctx context.Context, topic string, data interface{}) error { return nil }
func (nopBus) Subscribe(topic string, handler ports.EventHandler)                {}

// --- Test environment ---

type testServer struct {
	server    *Server
	users     *MockUserRepository
	listings  *MockListingRepository
	favorites *MockFavoriteRepository
	regions   *MockRegionRepository
	payments  *MockPaymentRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/uybor_test")
	t.Setenv("ADMIN_IDS", "999")
	t.Setenv("CLICK_SECRET_KEY", "click-secret")
	t.Setenv("PAYME_MERCHANT_KEY", "payme-secret")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() failed: %v", err)
	}

	nopLogger := zerolog.Nop()
	ts := &testServer{
		users:     new(MockUserRepository),
		listings:  new(MockListingRepository),
		favorites: new(MockFavoriteRepository),
		regions:   new(MockRegionRepository),
		payments:  new(MockPaymentRepository),
	}
	ts.server = NewServer(cfg, ts.users, ts.listings, ts.favorites, ts.regions, ts.payments, nopBus{}, &nopLogger)
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func approvedListing(id int64) *domain.Listing {
	return &domain.Listing{
		ID:             id,
		OwnerID:        uuid.New(),
		Title:          "3 xonali kvartira",
		Description:    "3 xonali kvartira, yevroremont",
		PropertyType:   domain.PropertyApartment,
		Purpose:        domain.PurposeSale,
		RegionKey:      "tashkent_city",
		DistrictKey:    "chilonzor",
		Price:          50000,
		PriceText:      "50000",
		IsActive:       true,
		ApprovalStatus: domain.ApprovalApproved,
		CreatedAt:      time.Now(),
	}
}

// --- Tests ---

func TestListListings_FilterPassthrough(t *testing.T) {
	ts := newTestServer(t)

	var got ports.ListingFilter
	ts.listings.On("ListPublic", mock.Anything, mock.AnythingOfType("ports.ListingFilter")).
		Run(func(args mock.Arguments) { got = args.Get(1).(ports.ListingFilter) }).
		Return([]*domain.Listing{approvedListing(1)}, nil).Once()

	rec := ts.do(http.MethodGet, "/api/listings?region=tashkent_city&district=chilonzor&min_price=10000&max_price=90000&q=kvartira&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, "tashkent_city", got.RegionKey)
	require.Equal(t, "chilonzor", got.DistrictKey)
	require.NotNil(t, got.MinPrice)
	require.Equal(t, int64(10000), *got.MinPrice)
	require.NotNil(t, got.MaxPrice)
	require.Equal(t, int64(90000), *got.MaxPrice)
	require.Equal(t, "kvartira", got.Query)
	require.Equal(t, 5, got.Limit)

	var body struct {
		Count   int               `json:"count"`
		Results []listingResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	require.Equal(t, int64(1), body.Results[0].ID)
}

func TestGetListing_BumpsViews(t *testing.T) {
	ts := newTestServer(t)
	listing := approvedListing(7)

	ts.listings.On("GetByID", mock.Anything, int64(7)).Return(listing, nil).Once()
	ts.listings.On("IncrementViews", mock.Anything, int64(7)).Return(nil).Once()

	rec := ts.do(http.MethodGet, "/api/listings/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ts.listings.AssertExpectations(t)
}

func TestGetListing_NotFound(t *testing.T) {
	ts := newTestServer(t)

	ts.listings.On("GetByID", mock.Anything, int64(404)).Return(nil, nil).Once()

	rec := ts.do(http.MethodGet, "/api/listings/404", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteListing_RequiresOwnership(t *testing.T) {
	ts := newTestServer(t)
	listing := approvedListing(7)

	stranger := &domain.User{ID: uuid.New(), TelegramID: 555}
	ts.listings.On("GetByID", mock.Anything, int64(7)).Return(listing, nil).Once()
	ts.users.On("GetByTelegramID", mock.Anything, int64(555)).Return(stranger, nil).Once()

	rec := ts.do(http.MethodDelete, "/api/listings/7?owner_telegram_id=555", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	ts.listings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddFavorite_RefusedForUnavailableListing(t *testing.T) {
	ts := newTestServer(t)
	user := &domain.User{ID: uuid.New(), TelegramID: 789}
	listing := approvedListing(7)
	listing.IsActive = false

	ts.users.On("GetByTelegramID", mock.Anything, int64(789)).Return(user, nil).Once()
	ts.listings.On("GetByID", mock.Anything, int64(7)).Return(listing, nil).Once()

	rec := ts.do(http.MethodPost, "/api/favorites", `{"telegram_id":789,"listing_id":7}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	ts.favorites.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestClickComplete_AlreadyProcessed(t *testing.T) {
	ts := newTestServer(t)
	paymentID := uuid.New()

	ts.payments.On("Complete", mock.Anything, paymentID, "12345", mock.AnythingOfType("time.Time")).
		Return(domain.ErrAlreadyProcessed).Once()

	body := `{"click_trans_id":12345,"merchant_trans_id":"` + paymentID.String() + `","amount":50000,"error":0}`
	rec := ts.do(http.MethodPost, "/payments/click/complete", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Error int `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, clickAlreadyProcessed, resp.Error)
}

func TestPayme_CreateThenPerform(t *testing.T) {
	ts := newTestServer(t)
	payment := &domain.Payment{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Amount: 50000,
		Status: domain.PaymentPending,
	}

	ts.payments.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	ts.payments.On("Complete", mock.Anything, payment.ID, "payme-tx-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	create := `{"id":1,"method":"CreateTransaction","params":{"id":"payme-tx-1","amount":5000000,"account":{"order_id":"` + payment.ID.String() + `"}}}`
	req := httptest.NewRequest(http.MethodPost, "/payments/payme", strings.NewReader(create))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic dGVzdDp0ZXN0")
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"state":1`)

	perform := `{"id":2,"method":"PerformTransaction","params":{"id":"payme-tx-1"}}`
	req = httptest.NewRequest(http.MethodPost, "/payments/payme", strings.NewReader(perform))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic dGVzdDp0ZXN0")
	rec = httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"state":2`)

	ts.payments.AssertExpectations(t)
}

func TestPayme_RequiresAuthHeader(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/payments/payme", `{"id":1,"method":"CheckTransaction","params":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "-32504")
}
