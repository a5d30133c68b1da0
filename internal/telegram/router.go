package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/store"
)

// botAPI is the subset of the bot client the router sends through.
// *tgbotapi.BotAPI implements it.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Router wires Telegram updates to command handlers and holds the per-chat
// pending state of the custom timezone flow.
type Router struct {
	bot       botAPI
	log       *zap.Logger
	repo      store.Repo
	defaultTZ string
	pending   map[int64]string // chatID -> event name awaiting a typed timezone
	mu        sync.RWMutex
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, defaultTZ string) *Router {
	return &Router{
		bot:       bot,
		log:       log,
		repo:      repo,
		defaultTZ: defaultTZ,
		pending:   make(map[int64]string),
	}
}

// setPending arms the custom timezone flow for a chat (non-persistent, in-memory).
func (r *Router) setPending(chatID int64, eventName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[chatID] = eventName
}

// getPending returns the event name awaiting a typed timezone, if any.
func (r *Router) getPending(chatID int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.pending[chatID]
	return name, ok
}

// clearPending clears the pending state for a chat.
func (r *Router) clearPending(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, chatID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	// Text messages
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		var userID int64
		if msg.From != nil {
			userID = msg.From.ID
		}

		if !msg.IsCommand() {
			// Free-form text used by the custom timezone flow
			r.handleFreeForm(ctx, chatID, strings.TrimSpace(msg.Text))
			return
		}

		args := strings.Fields(msg.CommandArguments())
		switch msg.Command() {
		case "start":
			r.handleStart(chatID)
		case "set":
			r.handleSet(ctx, chatID, userID, args)
		case "countdown":
			r.handleCountdown(ctx, chatID, args)
		case "list":
			r.handleList(ctx, chatID)
		case "remind":
			r.handleRemind(ctx, chatID, args, true)
		case "unremind":
			r.handleRemind(ctx, chatID, args, false)
		case "delete":
			r.handleDelete(ctx, chatID, args)
		case "timezone":
			r.handleTimezone(ctx, chatID, args)
		default:
			// Unknown command — ignore silently
		}
		return
	}

	// Callback queries (inline keyboards)
	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		data := cb.Data
		chatID := cb.Message.Chat.ID

		switch {
		case strings.HasPrefix(data, cbCustomTimezone+domain.CallbackSeparator):
			r.handleCustomTimezoneCallback(chatID, data, cb.ID)
		case strings.HasPrefix(data, cbTimezone+domain.CallbackSeparator):
			r.handleTimezoneCallback(ctx, chatID, cb.Message.MessageID, data, cb.ID)
		default:
			// Unknown callback — ignore silently
		}
		return
	}
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// RegisterCommands publishes the bot's command menu.
func (r *Router) RegisterCommands() error {
	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(botCommands()...))
	return err
}
