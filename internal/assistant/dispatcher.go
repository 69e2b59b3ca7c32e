// Package assistant turns one chat command into one reply.
//
// A command is normalized, classified by the fixed rule list, has its slots
// extracted, and is handed to the handler for its intent. Handlers talk to
// storage and external services only through the interfaces below, so every
// collaborator can be swapped in tests.
package assistant

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/darek/internal/intent"
	"github.com/hpungsan/darek/internal/ops"
	"github.com/hpungsan/darek/internal/record"
	"github.com/hpungsan/darek/internal/services"
	"github.com/hpungsan/darek/internal/slots"
)

// Store persists the rows created by commands.
// *ops.Gateway satisfies it.
type Store interface {
	AddReminder(ctx context.Context, input ops.ReminderInput) (*record.Reminder, error)
	AddTodo(ctx context.Context, input ops.TodoInput) (*record.TodoItem, error)
	AddShoppingItems(ctx context.Context, input ops.ShoppingInput) ([]record.ShoppingItem, error)
	AddNote(ctx context.Context, input ops.NoteInput) (*record.Note, error)
	AddTimer(ctx context.Context, input ops.TimerInput) (*record.Timer, error)
	AddCommandHistory(ctx context.Context, input ops.HistoryInput) (*record.CommandHistory, error)
}

// WeatherService reports current conditions.
type WeatherService interface {
	Current(ctx context.Context, city string) (*services.Weather, error)
}

// NewsService lists top headlines.
type NewsService interface {
	TopHeadlines(ctx context.Context, limit int) ([]services.Article, error)
}

// EncyclopediaService summarizes an article.
type EncyclopediaService interface {
	Summary(ctx context.Context, topic string) (*services.Summary, error)
}

// SearchService answers a web query.
type SearchService interface {
	Lookup(ctx context.Context, query string) (*services.Answer, error)
}

// MediaService starts playback of a title.
type MediaService interface {
	Play(ctx context.Context, title string) (string, error)
}

// Options configures a Dispatcher. Nil collaborators are allowed: a nil
// Store makes every create reply degraded, a nil service answers as not
// configured.
type Options struct {
	Store        Store
	Weather      WeatherService
	News         NewsService
	Encyclopedia EncyclopediaService
	Search       SearchService
	Media        MediaService

	Audit  AuditSink
	Picker Picker
	Clock  func() time.Time
	Logger *zap.Logger

	// DefaultCity is used when a weather command names no city.
	DefaultCity string
	// NewsLimit caps the headlines in a news reply. 0 means all.
	NewsLimit int
}

// Reply is the outcome of one command.
type Reply struct {
	// Intent is empty for empty input, which never reaches classification.
	Intent intent.Intent `json:"intent,omitempty"`
	Text   string        `json:"message"`
	// Saved is true when a create command stored its row.
	Saved bool `json:"saved"`
}

// request is one classified command handed to a handler.
type request struct {
	text   string
	userID string
	slot   slots.Slot
	err    error
}

type handlerFunc func(ctx context.Context, req request) Result

// Dispatcher routes commands to handlers. Safe for concurrent use.
type Dispatcher struct {
	store        Store
	weather      WeatherService
	news         NewsService
	encyclopedia EncyclopediaService
	search       SearchService
	media        MediaService

	audit       AuditSink
	picker      Picker
	now         func() time.Time
	log         *zap.Logger
	defaultCity string
	newsLimit   int

	handlers map[intent.Intent]handlerFunc
}

// New creates a Dispatcher from opts.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		store:        opts.Store,
		weather:      opts.Weather,
		news:         opts.News,
		encyclopedia: opts.Encyclopedia,
		search:       opts.Search,
		media:        opts.Media,
		audit:        opts.Audit,
		picker:       opts.Picker,
		now:          opts.Clock,
		log:          opts.Logger,
		defaultCity:  opts.DefaultCity,
		newsLimit:    opts.NewsLimit,
	}
	if d.audit == nil {
		d.audit = nopAudit{}
	}
	if d.picker == nil {
		d.picker = RandomPicker()
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}

	d.handlers = map[intent.Intent]handlerFunc{
		intent.Time:               d.handleTime,
		intent.SetReminder:        d.handleReminder,
		intent.AddTodo:            d.handleTodo,
		intent.AddShoppingItem:    d.handleShopping,
		intent.SearchEncyclopedia: d.handleEncyclopedia,
		intent.PlayMedia:          d.handleMedia,
		intent.StartTimer:         d.handleTimer,
		intent.Calculate:          d.handleCalculate,
		intent.Translate:          d.handleTranslate,
		intent.GetNews:            d.handleNews,
		intent.CreateNote:         d.handleNote,
		intent.TellJoke:           d.handleJoke,
		intent.GetWeather:         d.handleWeather,
		intent.Trivia:             fixed(pick(triviaReplies)),
		intent.HabitStub:          fixed(labeled(habitReply)),
		intent.CalendarStub:       fixed(labeled(calendarReply)),
		intent.SmallTalkHowAreYou: fixed(pick(howAreYouReplies)),
		intent.WebSearch:          d.handleWebSearch,
		intent.Greeting:           fixed(pick(greetingReplies)),
		intent.Capabilities:       fixed(plain(capabilitiesReply)),
		intent.Thanks:             fixed(pick(thanksReplies)),
		intent.Farewell:           fixed(pick(farewellReplies)),
		intent.Fallback:           fixed(pick(fallbackReplies)),
	}
	return d
}

func fixed(res Result) handlerFunc {
	return func(context.Context, request) Result { return res }
}

// ProcessCommand returns the reply text for one command.
func (d *Dispatcher) ProcessCommand(ctx context.Context, text, userID string) string {
	return d.Process(ctx, text, userID).Text
}

// Process classifies text, runs its handler and records the command.
// It never fails: every error becomes part of the reply.
func (d *Dispatcher) Process(ctx context.Context, text, userID string) Reply {
	normalized := record.Normalize(text)
	if normalized == "" {
		return Reply{Text: EmptyCommandReply}
	}
	userID = record.NormalizeUserID(userID)

	in := intent.Classify(normalized)
	slot, err := slots.Extract(in, normalized, slots.Defaults{City: d.defaultCity})

	log := d.log.With(zap.String("intent", string(in)), zap.String("user_id", userID))
	if err != nil {
		log.Debug("slot extraction failed", zap.Error(err))
	}

	res := d.handlers[in](ctx, request{text: normalized, userID: userID, slot: slot, err: err})
	reply := Reply{Intent: in, Text: Render(in, res, d.picker), Saved: res.Saved}

	if in == intent.Fallback {
		if err := d.audit.Unrecognized(d.now(), normalized); err != nil {
			log.Warn("failed to record unrecognized command", zap.Error(err))
		}
	}
	d.recordHistory(ctx, log, userID, strings.TrimSpace(text), in != intent.Fallback)

	log.Debug("command processed", zap.Bool("saved", reply.Saved))
	return reply
}

// recordHistory stores the command for signed-in users. Failures are logged only.
func (d *Dispatcher) recordHistory(ctx context.Context, log *zap.Logger, userID, command string, success bool) {
	if userID == "" || d.store == nil {
		return
	}
	_, err := d.store.AddCommandHistory(ctx, ops.HistoryInput{
		UserID:      userID,
		CommandText: command,
		Success:     success,
	})
	if err != nil {
		log.Warn("failed to record command history", zap.Error(err))
	}
}
