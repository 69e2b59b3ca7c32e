package assistant

import "github.com/hpungsan/darek/internal/intent"

// Result is what a handler produces before rendering.
type Result struct {
	// Text is the reply body. Ignored when Variants is set.
	Text string
	// Variants are interchangeable replies; the renderer picks one.
	Variants []string
	// Labeled prefixes the body with the intent's emoji label.
	Labeled bool
	// Emoji overrides the intent's label. Implies Labeled.
	Emoji string
	// Saved reports whether a create handler stored its row.
	Saved bool
}

// labels are the emoji prefixes for labeled replies.
var labels = map[intent.Intent]string{
	intent.SetReminder:     "🔔",
	intent.AddTodo:         "✅",
	intent.AddShoppingItem: "🛒",
	intent.PlayMedia:       "🎵",
	intent.StartTimer:      "⏰",
	intent.Calculate:       "🧮",
	intent.Translate:       "🌐",
	intent.GetNews:         "📰",
	intent.CreateNote:      "📝",
	intent.TellJoke:        "😄",
	intent.GetWeather:      "🌤️",
	intent.HabitStub:       "📊",
	intent.CalendarStub:    "📅",
	intent.WebSearch:       "🔍",
}

// Label returns the emoji prefix for in, or "" if it has none.
func Label(in intent.Intent) string {
	return labels[in]
}

// Render turns a handler result into the reply string.
// p chooses among Variants; an out-of-range pick falls back to the first.
func Render(in intent.Intent, res Result, p Picker) string {
	text := res.Text
	if n := len(res.Variants); n > 0 {
		i := p.Pick(n)
		if i < 0 || i >= n {
			i = 0
		}
		text = res.Variants[i]
	}

	emoji := res.Emoji
	if emoji == "" && res.Labeled {
		emoji = labels[in]
	}
	if emoji == "" {
		return text
	}
	return emoji + " " + text
}

func plain(text string) Result {
	return Result{Text: text}
}

func labeled(text string) Result {
	return Result{Text: text, Labeled: true}
}

func pick(variants []string) Result {
	return Result{Variants: variants}
}
