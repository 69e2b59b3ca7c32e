package assistant

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/darek/internal/calc"
	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/ops"
	"github.com/hpungsan/darek/internal/services"
	"github.com/hpungsan/darek/internal/slots"
	"github.com/hpungsan/darek/internal/translate"
)

// save runs fn against the store and returns why nothing was saved,
// or "" when the row was stored.
func (d *Dispatcher) save(userID string, fn func(Store) error) string {
	if userID == "" {
		return unsavedAnonymous
	}
	if d.store == nil {
		return unsavedStorage
	}
	if err := fn(d.store); err != nil {
		d.log.Warn("failed to save record",
			zap.String("user_id", userID),
			zap.String("code", string(errors.CodeOf(err))),
			zap.Error(err))
		return unsavedStorage
	}
	return ""
}

func (d *Dispatcher) handleTime(_ context.Context, _ request) Result {
	return plain(fmt.Sprintf("The current time is %s.", d.now().Format("03:04 PM")))
}

func (d *Dispatcher) handleReminder(ctx context.Context, req request) Result {
	r, ok := req.slot.(slots.Reminder)
	if req.err != nil || !ok {
		switch errors.SlotOf(req.err) {
		case slots.SlotWhen:
			return plain(hintReminderWhen)
		case slots.SlotTask:
			return plain(hintReminderTask)
		default:
			return plain(hintReminderFormat)
		}
	}

	remindAt := d.now().Add(time.Duration(r.In.Seconds()) * time.Second)
	reason := d.save(req.userID, func(s Store) error {
		_, err := s.AddReminder(ctx, ops.ReminderInput{UserID: req.userID, Task: r.Task, RemindAt: remindAt})
		return err
	})

	when := fmt.Sprintf("%d %s", r.In.Amount, r.In.Word)
	if reason != "" {
		return labeled(fmt.Sprintf("Reminder noted: '%s' in %s (%s)", r.Task, when, reason))
	}
	return Result{Text: fmt.Sprintf("Reminder set: '%s' in %s.", r.Task, when), Labeled: true, Saved: true}
}

func (d *Dispatcher) handleTodo(ctx context.Context, req request) Result {
	task, ok := req.slot.(string)
	if req.err != nil || !ok {
		return plain(hintTodo)
	}

	reason := d.save(req.userID, func(s Store) error {
		_, err := s.AddTodo(ctx, ops.TodoInput{UserID: req.userID, Task: task})
		return err
	})
	if reason != "" {
		return labeled(fmt.Sprintf("Todo item noted: '%s' (%s)", task, reason))
	}
	return Result{Text: fmt.Sprintf("Added '%s' to your to-do list.", task), Labeled: true, Saved: true}
}

func (d *Dispatcher) handleShopping(ctx context.Context, req request) Result {
	items, ok := req.slot.([]string)
	if req.err != nil || !ok || len(items) == 0 {
		return plain(hintShopping)
	}

	reason := d.save(req.userID, func(s Store) error {
		_, err := s.AddShoppingItems(ctx, ops.ShoppingInput{UserID: req.userID, Items: items})
		return err
	})

	joined := strings.Join(items, ", ")
	switch {
	case reason != "":
		return labeled(fmt.Sprintf("Shopping item noted: '%s' (%s)", joined, reason))
	case len(items) == 1:
		return Result{Text: fmt.Sprintf("Added '%s' to your shopping list.", items[0]), Labeled: true, Saved: true}
	default:
		return Result{Text: fmt.Sprintf("Added %d items to your shopping list: %s", len(items), joined), Labeled: true, Saved: true}
	}
}

func (d *Dispatcher) handleEncyclopedia(ctx context.Context, req request) Result {
	topic, ok := req.slot.(string)
	if req.err != nil || !ok {
		return plain(hintTopic)
	}
	if d.encyclopedia == nil {
		return plain(encyclopediaFailed)
	}

	summary, err := d.encyclopedia.Summary(ctx, topic)
	if err != nil {
		switch errors.CodeOf(err) {
		case errors.ErrServiceAmbiguous:
			return plain(fmt.Sprintf("Multiple results found for %s. Try being more specific.", topic))
		case errors.ErrServiceNotFound:
			return plain(fmt.Sprintf("Sorry, I could not find a Wikipedia page for %s.", topic))
		}
		d.log.Warn("encyclopedia lookup failed", zap.String("topic", topic), zap.Error(err))
		return plain(encyclopediaFailed)
	}
	return plain(fmt.Sprintf("Here's what I found about %s: %s", topic, summary.Extract))
}

func (d *Dispatcher) handleMedia(ctx context.Context, req request) Result {
	title, ok := req.slot.(string)
	if req.err != nil || !ok {
		return plain(hintMedia)
	}

	if d.media == nil {
		return labeled(fmt.Sprintf("I would play %s for you, but there was an issue opening YouTube.", title))
	}
	if _, err := d.media.Play(ctx, title); err != nil {
		d.log.Warn("media playback failed", zap.String("title", title), zap.Error(err))
		return labeled(fmt.Sprintf("I would play %s for you, but there was an issue opening YouTube.", title))
	}
	return labeled(fmt.Sprintf("Playing %s on YouTube.", title))
}

func (d *Dispatcher) handleTimer(ctx context.Context, req request) Result {
	dur, ok := req.slot.(slots.Duration)
	if req.err != nil || !ok {
		return plain(hintTimer)
	}

	name := fmt.Sprintf("%d-%s timer", dur.Amount, dur.Word)
	reason := d.save(req.userID, func(s Store) error {
		_, err := s.AddTimer(ctx, ops.TimerInput{UserID: req.userID, Name: name, DurationSeconds: dur.Seconds()})
		return err
	})
	if reason != "" {
		return labeled(fmt.Sprintf("Timer noted: %s (%s)", name, reason))
	}
	return Result{Text: fmt.Sprintf("Started a %s. I'll notify you when it's done!", name), Labeled: true, Saved: true}
}

// handleCalculate evaluates the arithmetic reading first and falls back to
// the percentage reading.
func (d *Dispatcher) handleCalculate(_ context.Context, req request) Result {
	m, ok := req.slot.(slots.Math)
	if req.err != nil || !ok {
		return plain(hintMath)
	}

	if m.Expression != "" {
		v, err := calc.Eval(m.Expression)
		if err == nil {
			return labeled(fmt.Sprintf("%s = %s", m.Expression, calc.Format(v)))
		}
		d.log.Debug("expression rejected", zap.String("expression", m.Expression), zap.Error(err))
	}
	if p := m.Percent; p != nil {
		return labeled(fmt.Sprintf("%s%% of %s = %.2f", calc.Format(p.Percent), calc.Format(p.Amount), p.Result()))
	}
	return plain(failMath)
}

func (d *Dispatcher) handleTranslate(_ context.Context, req request) Result {
	q, ok := req.slot.(slots.TranslationQuery)
	if req.err != nil || !ok {
		return labeled(fmt.Sprintf(
			"I support translation to: %s. Try: 'translate hello to German' or 'translate thank you to Japanese'",
			strings.Join(translate.Languages(), ", ")))
	}

	lang := slots.Title(q.Language)
	if t, found := translate.Lookup(q.Language, q.Phrase); found {
		return labeled(fmt.Sprintf("Translation: '%s' in %s is '%s'", q.Phrase, lang, t))
	}
	return labeled(fmt.Sprintf("I can translate these phrases to %s: %s",
		lang, strings.Join(translate.Phrases(q.Language), ", ")))
}

func (d *Dispatcher) handleNews(ctx context.Context, _ request) Result {
	if d.news == nil {
		return labeled(newsNotConfigured)
	}

	articles, err := d.news.TopHeadlines(ctx, d.newsLimit)
	switch {
	case errors.Is(err, errors.ErrServiceNotConfigured):
		return labeled(newsNotConfigured)
	case err != nil:
		d.log.Warn("news lookup failed", zap.Error(err))
		return labeled(newsUnavailable)
	case len(articles) == 0:
		return labeled(newsEmpty)
	}

	var b strings.Builder
	b.WriteString("Latest News Headlines:\n")
	for i, a := range articles {
		fmt.Fprintf(&b, "\n%d. %s", i+1, a.Title)
	}
	return labeled(b.String())
}

func (d *Dispatcher) handleNote(ctx context.Context, req request) Result {
	content, ok := req.slot.(string)
	if req.err != nil || !ok {
		return plain(hintNote)
	}

	reason := d.save(req.userID, func(s Store) error {
		_, err := s.AddNote(ctx, ops.NoteInput{UserID: req.userID, Content: content})
		return err
	})
	if reason != "" {
		return labeled(fmt.Sprintf("Note saved locally: '%s' (%s)", content, reason))
	}
	return Result{Text: fmt.Sprintf("Created a note: '%s'", content), Labeled: true, Saved: true}
}

func (d *Dispatcher) handleJoke(_ context.Context, _ request) Result {
	return Result{Variants: jokes, Labeled: true}
}

func (d *Dispatcher) handleWeather(ctx context.Context, req request) Result {
	c, _ := req.slot.(slots.City)
	city := c.Name
	if city == "" {
		city = d.defaultCity
	}
	if d.weather == nil {
		return Result{Text: weatherNotConfigured, Emoji: "🔑"}
	}

	w, err := d.weather.Current(ctx, city)
	if err != nil {
		switch errors.CodeOf(err) {
		case errors.ErrServiceNotFound:
			return Result{
				Text:  fmt.Sprintf("Couldn't find weather data for '%s'. Please check the city name and try again.", city),
				Emoji: "❌",
			}
		case errors.ErrServiceNotConfigured:
			return Result{Text: weatherNotConfigured, Emoji: "🔑"}
		case errors.ErrServiceUnauthorized:
			return Result{Text: weatherRejected, Emoji: "🔑"}
		case errors.ErrServiceTimeout, errors.ErrServiceUnreachable:
			return Result{Text: weatherUnreachable, Emoji: "🌐"}
		}
		d.log.Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		return Result{Text: weatherFailed, Emoji: "⚠️"}
	}

	return labeled(fmt.Sprintf(
		"**Weather in %s**\n\nCurrently: %s\nTemperature: %d°C (feels like %d°C)\nHumidity: %d%%\nWind Speed: %s m/s",
		slots.Title(city),
		slots.Title(w.Description),
		int(math.Round(w.Temperature)),
		int(math.Round(w.FeelsLike)),
		w.Humidity,
		strconv.FormatFloat(w.WindSpeed, 'f', -1, 64),
	))
}

func (d *Dispatcher) handleWebSearch(ctx context.Context, req request) Result {
	q, ok := req.slot.(string)
	if req.err != nil || !ok {
		return labeled(hintSearch)
	}
	if d.search == nil {
		return labeled(searchUnavailable)
	}

	a, err := d.search.Lookup(ctx, q)
	if err != nil {
		d.log.Warn("web search failed", zap.String("query", q), zap.Error(err))
		switch errors.CodeOf(err) {
		case errors.ErrServiceTimeout:
			return labeled(searchTimeout)
		case errors.ErrServiceUnreachable:
			return labeled(searchUnreachable)
		default:
			return labeled(searchUnavailable)
		}
	}

	title := slots.Title(q)
	switch a.Kind {
	case services.AnswerAbstract, services.AnswerRelated:
		return labeled(fmt.Sprintf("**%s**\n\n%s\n\n📖 Source: %s", title, a.Text, a.Source))
	case services.AnswerDefinition:
		return labeled(fmt.Sprintf("**Definition: %s**\n\n%s\n\n📖 Source: %s", title, a.Text, a.Source))
	case services.AnswerDirect:
		return labeled(fmt.Sprintf("**%s**\n\n%s", title, a.Text))
	case services.AnswerNoDetail:
		return labeled(fmt.Sprintf("**Search: %s**\n\n%s", q, searchNoDetail))
	default:
		return labeled(fmt.Sprintf("**Search: %s**\n\n%s", q, searchNothing))
	}
}
