package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uybor/internal/bot"
	"uybor/internal/core/domain"
	"uybor/internal/core/ports"
)

func adminUpdate() *ports.BotUpdate {
	return &ports.BotUpdate{ChatID: 500, UserID: testAdminID, CallbackQueryID: "cb_admin", MessageID: 77}
}

func pendingListing(id int64) *domain.Listing {
	return &domain.Listing{
		ID:             id,
		OwnerID:        uuid.New(),
		Title:          "3 xonali kvartira",
		Description:    "3 xonali kvartira, yevroremont",
		PropertyType:   domain.PropertyApartment,
		Purpose:        domain.PurposeSale,
		RegionKey:      "tashkent_city",
		DistrictKey:    "chilonzor",
		FullAddress:    "Chilonzor, Toshkent",
		Price:          50000,
		PriceText:      "50000",
		Area:           65,
		AreaText:       "65",
		ContactInfo:    "+998901234567",
		IsActive:       true,
		ApprovalStatus: domain.ApprovalPending,
		CreatedAt:      time.Now(),
	}
}

func TestModeration_ApprovePublishesToChannel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := &domain.User{ID: uuid.New(), TelegramID: testAdminID, Language: domain.LangUz}
	listing := pendingListing(42)

	env.listings.On("Approve", mock.Anything, int64(42), testAdminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	env.listings.On("GetByID", mock.Anything, int64(42)).Return(listing, nil).Once()
	env.listings.On("SetChannelMessage", mock.Anything, int64(42), 777).Return(nil).Once()
	env.botClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(p ports.SendMessageParams) bool {
		return p.ChatID == env.deps.Cfg.ChannelID
	})).Return(777, nil).Once()
	env.botClient.On("AnswerCallbackQuery", mock.Anything, mock.Anything).Return(nil)
	env.botClient.On("EditMessageText", mock.Anything, mock.Anything).Return(nil)

	h := NewModerationCallbackHandler(env.deps)
	require.NoError(t, h.Handle(ctx, adminUpdate(), ports.Action{Verb: "approve", Arg: "42"}, admin))

	events := env.bus.eventsFor(bot.TopicListingApproved)
	require.Len(t, events, 1)
	require.Same(t, listing, events[0].Data.(*bot.ListingEvent).Listing)

	env.listings.AssertExpectations(t)
	env.botClient.AssertExpectations(t)
}

func TestModeration_SecondApproveDoesNotPublishTwice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := &domain.User{ID: uuid.New(), TelegramID: testAdminID, Language: domain.LangUz}

	env.listings.On("Approve", mock.Anything, int64(42), testAdminID, mock.AnythingOfType("time.Time")).
		Return(domain.ErrAlreadyProcessed).Once()
	env.botClient.On("AnswerCallbackQuery", mock.Anything, mock.Anything).Return(nil).Once()

	h := NewModerationCallbackHandler(env.deps)
	require.NoError(t, h.Handle(ctx, adminUpdate(), ports.Action{Verb: "approve", Arg: "42"}, admin))

	require.Empty(t, env.bus.eventsFor(bot.TopicListingApproved))
	env.listings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	env.botClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
	env.botClient.AssertExpectations(t)
}

func TestModeration_NonAdminRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := testUser(domain.LangUz) // TelegramID 789, not an admin

	env.botClient.On("AnswerCallbackQuery", mock.Anything, mock.Anything).Return(nil).Once()

	h := NewModerationCallbackHandler(env.deps)
	update := &ports.BotUpdate{ChatID: 1000, UserID: user.TelegramID, CallbackQueryID: "cb1"}
	require.NoError(t, h.Handle(ctx, update, ports.Action{Verb: "approve", Arg: "42"}, user))

	env.listings.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModeration_DeclineWithFeedback(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := &domain.User{ID: uuid.New(), TelegramID: testAdminID, Language: domain.LangUz}
	listing := pendingListing(42)
	feedback := "photos unclear"

	env.listings.On("GetByID", mock.Anything, int64(42)).Return(listing, nil)
	env.listings.On("Decline", mock.Anything, int64(42), testAdminID, feedback).Return(nil).Once()
	env.botClient.On("SendMessage", mock.Anything, mock.Anything).Return(1, nil)
	env.botClient.On("AnswerCallbackQuery", mock.Anything, mock.Anything).Return(nil)

	// The decline button switches the admin's chat into feedback mode.
	h := NewModerationCallbackHandler(env.deps)
	require.NoError(t, h.Handle(ctx, adminUpdate(), ports.Action{Verb: "decline", Arg: "42"}, admin))

	sess := env.deps.Sessions.Get(500)
	require.Equal(t, domain.StepAdminFeedback, sess.Step)
	require.Equal(t, int64(42), sess.ReviewListingID)

	// The typed reason completes the decline.
	msg := NewMessageHandler(env.deps)
	require.NoError(t, msg.Handle(ctx, &ports.BotUpdate{ChatID: 500, UserID: testAdminID, Text: feedback}, admin))

	events := env.bus.eventsFor(bot.TopicListingDeclined)
	require.Len(t, events, 1)
	declined := events[0].Data.(*bot.ListingDeclinedEvent)
	require.Equal(t, feedback, declined.Feedback)
	require.Same(t, listing, declined.Listing)

	require.Equal(t, domain.StepNone, env.deps.Sessions.Get(500).Step)
	env.listings.AssertExpectations(t)
}

func TestModeration_StatsButton(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := &domain.User{ID: uuid.New(), TelegramID: testAdminID, Language: domain.LangUz}

	env.listings.On("Stats", mock.Anything).Return(&ports.ListingStats{
		Total: 10, Pending: 2, Approved: 7, Declined: 1, Users: 5, Today: 3, TodayApproved: 2,
	}, nil).Once()
	env.botClient.On("AnswerCallbackQuery", mock.Anything, mock.Anything).Return(nil)
	env.botClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(p ports.SendMessageParams) bool {
		return p.ChatID == 500
	})).Return(1, nil).Once()

	h := NewModerationCallbackHandler(env.deps)
	require.NoError(t, h.Handle(ctx, adminUpdate(), ports.Action{Verb: "stats"}, admin))

	env.listings.AssertExpectations(t)
	env.botClient.AssertExpectations(t)
}
