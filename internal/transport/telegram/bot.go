package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/state"
	"github.com/sandevgo/mentoria/internal/service/ui"
	"github.com/sandevgo/mentoria/pkg/log"
)

const (
	baseContextKey = "base_context"
	choiceUnique   = "choice"
	greeting       = "Hola"

	// Telegram rejects callback data over 64 bytes
	maxCallbackData = 64

	msgTurnFailed = "Lo siento, ocurrió un error inesperado. Intenta de nuevo en un momento."
)

type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	turns    core.TurnHandler
	sessions *state.Sessions
	commands core.CmdRouter
	sender   *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	turns core.TurnHandler,
	sessions *state.Sessions,
	commands core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		turns:    turns,
		sessions: sessions,
		commands: commands,
		sender:   newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !cfg.Allowed(c.Sender().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)
	b.Handle(&tele.Btn{Unique: choiceUnique}, bot.handleChoice)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := b.requestContext(c)
	userID := userKey(c.Sender().ID)
	b.sessions.Update(ctx, userID, func(s *core.Session) { s.ConversationID = "" })
	return b.runTurn(c, core.TurnRequest{UserID: userID, Message: greeting})
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := b.requestContext(c)
	userID := userKey(c.Sender().ID)

	if strings.HasPrefix(c.Text(), "/") {
		var (
			out     string
			handled bool
		)
		b.sessions.Update(ctx, userID, func(s *core.Session) {
			out, handled = b.commands.Execute(ctx, s, c.Text())
		})
		if handled {
			return b.sender.sendMarkdown(ctx, c.Chat(), out, nil)
		}
	}

	return b.runTurn(c, core.TurnRequest{UserID: userID, Message: c.Text()})
}

func (b *Bot) handleChoice(c tele.Context) error {
	_ = c.Respond()

	input, err := parseChoice(c.Callback().Data)
	if err != nil {
		log.FromCtx(b.requestContext(c)).Warn().Err(err).Msg("ignoring callback")
		return nil
	}
	return b.runTurn(c, core.TurnRequest{
		UserID:   userKey(c.Sender().ID),
		UserData: []core.FieldInput{input},
	})
}

func (b *Bot) runTurn(c tele.Context, req core.TurnRequest) error {
	ctx := b.requestContext(c)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	req.ConversationID = b.sessions.Get(ctx, req.UserID).ConversationID
	resp, err := b.turns.HandleTurn(ctx, req)
	if err != nil {
		logger.Error().Err(err).Str("user_id", req.UserID).Msg("turn failed")
		return c.Send(msgTurnFailed)
	}

	b.sessions.Update(ctx, req.UserID, func(s *core.Session) { s.ConversationID = resp.ConversationID })
	return b.sender.sendMarkdown(ctx, c.Chat(), ui.Markdown(resp), keyboard(ui.Choices(resp)))
}

func (b *Bot) requestContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(baseContextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

func userKey(id int64) string {
	return fmt.Sprintf("telegram-%d", id)
}

// keyboard lays out one button per row, grouped in question order. Choices
// whose callback data would not fit are left out.
func keyboard(choices []ui.Choice) *tele.ReplyMarkup {
	if len(choices) == 0 {
		return nil
	}
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(choices))
	for _, ch := range choices {
		if len(choiceUnique)+len(ch.Field)+len(ch.Value)+3 > maxCallbackData {
			continue
		}
		rows = append(rows, markup.Row(markup.Data(ch.Label, choiceUnique, ch.Field, ch.Value)))
	}
	markup.Inline(rows...)
	return markup
}

// parseChoice decodes the "field|value" payload of a choice button.
func parseChoice(data string) (core.FieldInput, error) {
	field, value, ok := strings.Cut(data, "|")
	if !ok || field == "" {
		return core.FieldInput{}, errors.New("malformed choice payload")
	}
	return core.FieldInput{Field: field, Value: value}, nil
}
