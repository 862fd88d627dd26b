package handler

import (
	"context"
	"sync"
	"time"

	"langportal/internal/chat"
	"langportal/internal/domain"
	"langportal/internal/middleware"
	"langportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	// Quiz answers are recorded under this group and activity
	quizGroup    = "Telegram"
	quizActivity = "Bot quiz"

	requestTimeout = 10 * time.Second
	askTimeout     = 3 * time.Minute
)

// Services bundles what the bot talks to
type Services struct {
	Auth      *service.AuthService
	Words     *service.WordService
	Study     *service.StudyService
	Dashboard service.DashboardProvider
	Chats     *chat.Registry
}

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	wordService *service.WordService
	study       *service.StudyService
	dashboard   service.DashboardProvider
	chats       *chat.Registry
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks so double-tapped buttons are processed one at a time
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, services Services, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		bot:           bot,
		authService:   services.Auth,
		wordService:   services.Words,
		study:         services.Study,
		dashboard:     services.Dashboard,
		chats:         services.Chats,
		loc:           loc,
		now:           time.Now,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages carry the password, so they check authorization themselves
	h.bot.Handle(tele.OnText, h.handleText)

	authed := h.bot.Group()
	authed.Use(middleware.AuthMiddleware(h.authService, h.logger))

	authed.Handle("/ask", h.handleAsk)
	authed.Handle("/clear", h.handleClearChat)

	// Callback queries (inline buttons)
	authed.Handle(&btnAddWord, h.handleAddWord)
	authed.Handle(&btnQuiz, h.handleQuiz)
	authed.Handle(&btnNextWord, h.handleQuiz)
	authed.Handle(&btnRemoveWord, h.handleRemoveWord)
	authed.Handle(&btnFinishQuiz, h.handleFinishQuiz)
	authed.Handle(&btnDashboard, h.handleDashboard)
	authed.Handle(&btnLastSession, h.handleLastSession)
	authed.Handle(&btnAsk, h.handleAskButton)
	authed.Handle(&btnCancel, h.handleCancel)
	authed.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for buttons whose Unique was lost
	authed.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// userLock returns the callback lock of a user
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Add word",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🎯 Quiz",
	}
	btnDashboard = tele.Btn{
		Unique: "dashboard",
		Text:   "📊 Dashboard",
	}
	btnLastSession = tele.Btn{
		Unique: "last_session",
		Text:   "🕘 Last session",
	}
	btnAsk = tele.Btn{
		Unique: "ask",
		Text:   "💬 Ask tutor",
	}
	btnNextWord = tele.Btn{
		Unique: "next_word",
		Text:   "🔄 Next word",
	}
	btnRemoveWord = tele.Btn{
		Unique: "remove_word",
		Text:   "🗑 Remove word",
	}
	btnFinishQuiz = tele.Btn{
		Unique: "finish_quiz",
		Text:   "🏁 Finish",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAddWord, btnQuiz),
		menu.Row(btnDashboard, btnLastSession),
		menu.Row(btnAsk),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))
	return markup
}
