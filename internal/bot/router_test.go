package bot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"uybor/internal/bot/i18n"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

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

// MockCommandHandler
type MockCommandHandler struct {
	mock.Mock
}

func (m *MockCommandHandler) Command() string {
	args := m.Called()
	return args.String(0)
}
func (m *MockCommandHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	args := m.Called(ctx, update, user)
	return args.Error(0)
}

// MockCallbackHandler
type MockCallbackHandler struct {
	mock.Mock
}

func (m *MockCallbackHandler) Verbs() []string {
	args := m.Called()
	return args.Get(0).([]string)
}
func (m *MockCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate, action ports.Action, user *domain.User) error {
	args := m.Called(ctx, update, action, user)
	return args.Error(0)
}

// MockMessageHandler
type MockMessageHandler struct {
	mock.Mock
}

func (m *MockMessageHandler) Handle(ctx context.Context, update *ports.BotUpdate, user *domain.User) error {
	args := m.Called(ctx, update, user)
	return args.Error(0)
}

// --- Tests ---

func TestRouter_Dispatch_Command(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockUserRepo := new(MockUserRepository)
	mockBotClient := new(MockBotClient)

	router := NewRouter(mockUserRepo, mockBotClient, &nopLogger)

	startHandler := new(MockCommandHandler)
	startHandler.On("Command").Return("start")
	startHandler.On("Handle", mock.Anything, mock.AnythingOfType("*ports.BotUpdate"), (*domain.User)(nil)).Return(nil).Once()

	helpHandler := new(MockCommandHandler)
	helpHandler.On("Command").Return("help")

	router.RegisterCommandHandler(startHandler)
	router.RegisterCommandHandler(helpHandler)

	// /start for an unknown user must still reach the start handler.
	mockUserRepo.On("GetByTelegramID", mock.Anything, int64(789)).Return(nil, nil).Once()

	router.Dispatch(ctx, &ports.BotUpdate{
		ChatID:  1000,
		UserID:  789,
		Text:    "/start",
		Command: "start",
	})

	mockUserRepo.AssertExpectations(t)
	startHandler.AssertExpectations(t)
	helpHandler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_Dispatch_Callback(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockUserRepo := new(MockUserRepository)
	mockBotClient := new(MockBotClient)

	router := NewRouter(mockUserRepo, mockBotClient, &nopLogger)

	testUser := &domain.User{ID: uuid.New(), TelegramID: 789, Language: domain.LangUz}

	favHandler := new(MockCallbackHandler)
	favHandler.On("Verbs").Return([]string{"fav_add"})
	favHandler.On("Handle", mock.Anything, mock.AnythingOfType("*ports.BotUpdate"),
		ports.Action{Verb: "fav_add", Arg: "42"}, testUser).Return(nil).Once()

	router.RegisterCallbackHandler(favHandler)

	mockUserRepo.On("GetByTelegramID", mock.Anything, int64(789)).Return(testUser, nil).Once()

	data := "fav_add:42"
	router.Dispatch(ctx, &ports.BotUpdate{
		ChatID:          1000,
		UserID:          789,
		CallbackQueryID: "cb_id_1",
		CallbackData:    &data,
	})

	mockUserRepo.AssertExpectations(t)
	favHandler.AssertExpectations(t)
}

func TestRouter_Dispatch_UnknownCallbackStopsSpinner(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockUserRepo := new(MockUserRepository)
	mockBotClient := new(MockBotClient)

	router := NewRouter(mockUserRepo, mockBotClient, &nopLogger)

	testUser := &domain.User{ID: uuid.New(), TelegramID: 789, Language: domain.LangUz}
	mockUserRepo.On("GetByTelegramID", mock.Anything, int64(789)).Return(testUser, nil).Once()
	mockBotClient.On("AnswerCallbackQuery", mock.Anything,
		ports.AnswerCallbackParams{CallbackQueryID: "cb_id_2"}).Return(nil).Once()

	data := "no_such_verb:1"
	router.Dispatch(ctx, &ports.BotUpdate{
		ChatID:          1000,
		UserID:          789,
		CallbackQueryID: "cb_id_2",
		CallbackData:    &data,
	})

	mockUserRepo.AssertExpectations(t)
	mockBotClient.AssertExpectations(t)
}

func TestRouter_Dispatch_MenuLabelRoutesAsCommand(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockUserRepo := new(MockUserRepository)
	mockBotClient := new(MockBotClient)

	router := NewRouter(mockUserRepo, mockBotClient, &nopLogger)

	testUser := &domain.User{ID: uuid.New(), TelegramID: 789, Language: domain.LangRu}

	searchHandler := new(MockCommandHandler)
	searchHandler.On("Command").Return(i18n.MenuSearch)
	searchHandler.On("Handle", mock.Anything, mock.AnythingOfType("*ports.BotUpdate"), testUser).Return(nil).Once()
	router.RegisterCommandHandler(searchHandler)

	mockUserRepo.On("GetByTelegramID", mock.Anything, int64(789)).Return(testUser, nil).Once()

	// A Russian-language user pressing their localized search button.
	router.Dispatch(ctx, &ports.BotUpdate{
		ChatID: 1000,
		UserID: 789,
		Text:   i18n.MenuLabel(domain.LangRu, i18n.MenuSearch),
	})

	mockUserRepo.AssertExpectations(t)
	searchHandler.AssertExpectations(t)
}

func TestRouter_Dispatch_Text_NewUser(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockUserRepo := new(MockUserRepository)
	mockBotClient := new(MockBotClient)

	router := NewRouter(mockUserRepo, mockBotClient, &nopLogger)

	mockUserRepo.On("GetByTelegramID", mock.Anything, int64(789)).Return(nil, nil).Once()
	mockBotClient.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).Return(0, nil).Once()

	router.Dispatch(ctx, &ports.BotUpdate{
		ChatID: 1000,
		UserID: 789,
		Text:   "hello world",
	})

	mockUserRepo.AssertExpectations(t)
	mockBotClient.AssertExpectations(t)
}

func TestRouter_Dispatch_TextRoutesToMessageHandler(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockUserRepo := new(MockUserRepository)
	mockBotClient := new(MockBotClient)

	router := NewRouter(mockUserRepo, mockBotClient, &nopLogger)

	messageHandler := new(MockMessageHandler)
	router.SetMessageHandler(messageHandler)

	testUser := &domain.User{ID: uuid.New(), TelegramID: 789, Language: domain.LangUz}

	mockUserRepo.On("GetByTelegramID", mock.Anything, int64(789)).Return(testUser, nil).Once()
	messageHandler.On("Handle", mock.Anything, mock.AnythingOfType("*ports.BotUpdate"), testUser).Return(nil).Once()

	router.Dispatch(ctx, &ports.BotUpdate{
		ChatID: 1000,
		UserID: 789,
		Text:   "50000",
	})

	mockUserRepo.AssertExpectations(t)
	messageHandler.AssertExpectations(t)
	mockBotClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestRouter_Dispatch_BlockedUserDropped(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockUserRepo := new(MockUserRepository)
	mockBotClient := new(MockBotClient)

	router := NewRouter(mockUserRepo, mockBotClient, &nopLogger)

	menuHandler := new(MockCommandHandler)
	menuHandler.On("Command").Return("menu")
	router.RegisterCommandHandler(menuHandler)

	blocked := &domain.User{ID: uuid.New(), TelegramID: 789, IsBlocked: true}
	mockUserRepo.On("GetByTelegramID", mock.Anything, int64(789)).Return(blocked, nil).Once()

	router.Dispatch(ctx, &ports.BotUpdate{
		ChatID:  1000,
		UserID:  789,
		Text:    "/menu",
		Command: "menu",
	})

	mockUserRepo.AssertExpectations(t)
	menuHandler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything, mock.Anything)
	mockBotClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}
