package slots

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/intent"
	"github.com/hpungsan/darek/internal/translate"
)

// Slot names reported in extraction errors.
const (
	SlotWhen       = "when"
	SlotDuration   = "duration"
	SlotUnit       = "unit"
	SlotTask       = "task"
	SlotItems      = "items"
	SlotExpression = "expression"
	SlotLanguage   = "language"
	SlotContent    = "content"
	SlotQuery      = "query"
	SlotTitle      = "title"
)

// Slot is the typed parameter set extracted for one intent.
type Slot interface{}

// Defaults fills slots the user may leave out.
type Defaults struct {
	City string
}

// Extract runs the extractor registered for in.
// Intents without parameters yield a nil Slot and no error.
func Extract(in intent.Intent, text string, d Defaults) (Slot, error) {
	switch in {
	case intent.SetReminder:
		r, err := ParseReminder(text)
		return r, err
	case intent.AddTodo:
		s, err := TodoTask(text)
		return s, err
	case intent.AddShoppingItem:
		items, err := ShoppingItems(text)
		return items, err
	case intent.SearchEncyclopedia:
		s, err := EncyclopediaTopic(text)
		return s, err
	case intent.PlayMedia:
		s, err := MediaTitle(text)
		return s, err
	case intent.StartTimer:
		dur, err := ParseTimer(text)
		return dur, err
	case intent.Calculate:
		m, err := ParseMath(text)
		return m, err
	case intent.Translate:
		q, err := ParseTranslation(text)
		return q, err
	case intent.CreateNote:
		s, err := NoteContent(text)
		return s, err
	case intent.GetWeather:
		return ParseCity(text, d.City), nil
	case intent.WebSearch:
		s, err := WebQuery(text)
		return s, err
	default:
		return nil, nil
	}
}

// ParseDuration reads "in <amount> <unit>" from words.
// It returns the index of "in" so callers can cut the phrase out.
func ParseDuration(words []string) (Duration, int, error) {
	idx := lo.IndexOf(lo.Map(words, func(w string, _ int) string { return bare(w) }), "in")
	if idx < 0 {
		return Duration{}, -1, errors.NewExtraction(SlotWhen, "no \"in <amount> <unit>\" phrase")
	}
	if idx+2 >= len(words) {
		return Duration{}, idx, errors.NewExtraction(SlotDuration, "duration is incomplete")
	}

	amountWord := bare(words[idx+1])
	amount, err := strconv.Atoi(amountWord)
	if err != nil {
		return Duration{}, idx, errors.NewExtraction(SlotDuration, fmt.Sprintf("%q is not a number", amountWord))
	}
	if amount <= 0 {
		return Duration{}, idx, errors.NewExtraction(SlotDuration, "duration must be positive")
	}

	word := bare(words[idx+2])
	unit := Minute
	switch {
	case strings.Contains(word, "minute"):
		unit = Minute
	case strings.Contains(word, "hour"):
		unit = Hour
	}
	return Duration{Amount: amount, Unit: unit, Word: word}, idx, nil
}

// ParseReminder extracts the task and delay from a reminder command.
// The duration is checked before the task so a malformed time wins over an empty task.
func ParseReminder(text string) (Reminder, error) {
	words := strings.Fields(text)
	dur, idx, err := ParseDuration(words)
	if err != nil {
		return Reminder{}, err
	}

	rest := append(append([]string{}, words[:idx]...), words[idx+3:]...)
	rest = removePhrases(rest, "set a reminder", "remind me")
	rest = trimEdges(rest, "to", "that", "about")

	task := join(rest)
	if task == "" {
		return Reminder{In: dur}, errors.NewExtraction(SlotTask, "nothing to be reminded about")
	}
	return Reminder{Task: task, In: dur}, nil
}

// ParseTimer reads the first numeric token and a minute or second unit.
func ParseTimer(text string) (Duration, error) {
	words := strings.Fields(text)
	numeric, ok := lo.Find(words, func(w string) bool {
		b := bare(w)
		return b != "" && strings.IndexFunc(b, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
	})
	if !ok {
		return Duration{}, errors.NewExtraction(SlotDuration, "no number in timer command")
	}
	amount, err := strconv.Atoi(bare(numeric))
	if err != nil || amount <= 0 {
		return Duration{}, errors.NewExtraction(SlotDuration, "timer length must be a positive number")
	}

	switch {
	case strings.Contains(text, "minute"):
		return Duration{Amount: amount, Unit: Minute, Word: "minute"}, nil
	case strings.Contains(text, "second"):
		return Duration{Amount: amount, Unit: Second, Word: "second"}, nil
	}
	return Duration{}, errors.NewExtraction(SlotUnit, "timer unit must be minutes or seconds")
}

// TodoTask extracts the to-do item text.
func TodoTask(text string) (string, error) {
	words := removePhrases(strings.Fields(text), "add to my to-do list")
	words = removeWords(words, "add", "todo", "to-do", "list", "create")
	words = trimEdges(words, "to", "my", "the", "a")

	task := join(words)
	if task == "" {
		return "", errors.NewExtraction(SlotTask, "no to-do item given")
	}
	return task, nil
}

// ShoppingItems extracts the items of a shopping command, split on " and " and commas.
func ShoppingItems(text string) ([]string, error) {
	words := removeWords(strings.Fields(text), "add", "shopping", "list")
	words = trimEdges(words, "to", "my", "the", "on", "and")

	pieces := lo.FlatMap(strings.Split(join(words), " and "), func(s string, _ int) []string {
		return strings.Split(s, ",")
	})
	items := lo.Compact(lo.Map(pieces, func(s string, _ int) string {
		return strings.Trim(s, " .!?;:")
	}))
	if len(items) == 0 {
		return nil, errors.NewExtraction(SlotItems, "no shopping items given")
	}
	return items, nil
}

// ParseCity extracts a city name, falling back to def.
func ParseCity(text, def string) City {
	city := ""
	if strings.Contains(text, " in ") {
		city = strings.Split(text, " in ")[1]
	} else if i := strings.Index(text, "weather "); i >= 0 {
		after := strings.TrimSpace(text[i+len("weather "):])
		if !strings.HasPrefix(after, "like") {
			city = after
		}
	}

	city = strings.ReplaceAll(city, "?", "")
	words := removePhrases(strings.Fields(city), "the weather")
	words = removeWords(words, "like")
	words = trimEdges(words, "for", "at", "today", "now", "right")

	if name := join(words); name != "" {
		return City{Name: name}
	}
	return City{Name: def}
}

// Math holds what a calculation command offers: an arithmetic expression,
// a percentage pattern, or both.
type Math struct {
	Expression string
	Percent    *Percent
}

var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent)\s*of\s+(\d+(?:\.\d+)?)`)

// MathExpression keeps only digits, arithmetic operators, dots, parentheses and spaces.
// The result is not trusted as safe; it is input for the calc evaluator.
func MathExpression(text string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', strings.ContainsRune("+-*/().", r):
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, text)
	if !strings.ContainsAny(kept, "0123456789") {
		return ""
	}
	return strings.Join(strings.Fields(kept), " ")
}

// ParsePercent matches "<percent>% of <amount>".
func ParsePercent(text string) (Percent, bool) {
	m := percentPattern.FindStringSubmatch(text)
	if m == nil {
		return Percent{}, false
	}
	p, err1 := strconv.ParseFloat(m[1], 64)
	a, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return Percent{}, false
	}
	return Percent{Percent: p, Amount: a}, true
}

// ParseMath extracts both readings of a calculation command.
func ParseMath(text string) (Math, error) {
	m := Math{Expression: MathExpression(text)}
	if p, ok := ParsePercent(text); ok {
		m.Percent = &p
	}
	if m.Expression == "" && m.Percent == nil {
		return m, errors.NewExtraction(SlotExpression, "no arithmetic in command")
	}
	return m, nil
}

// ParseTranslation finds the first supported language named as "to <language>"
// and the phrase left after removing it and the word "translate".
// An unknown phrase is not an error here; the dictionary decides.
func ParseTranslation(text string) (TranslationQuery, error) {
	for _, lang := range translate.Languages() {
		if !strings.Contains(text, "to "+lang) {
			continue
		}
		words := removePhrases(strings.Fields(text), "to "+lang)
		words = removeWords(words, "translate")
		phrase := strings.Trim(join(words), "'\"?!. ")
		return TranslationQuery{Phrase: phrase, Language: lang}, nil
	}
	return TranslationQuery{}, errors.NewExtraction(SlotLanguage, "no supported target language")
}

// NoteContent extracts the body of a note.
func NoteContent(text string) (string, error) {
	words := removePhrases(strings.Fields(text), "create a note", "make a note", "add a note", "take a note")
	words = trimEdges(words, "create", "make", "add", "a", "new", "note", "to", "that", "saying")

	content := join(words)
	if content == "" {
		return "", errors.NewExtraction(SlotContent, "note is empty")
	}
	return content, nil
}

// WebQuery strips search trigger phrases and returns the query.
func WebQuery(text string) (string, error) {
	words := removePhrases(strings.Fields(text),
		"search for", "search", "google", "find", "look up", "what is", "who is",
		"tell me about", "about", "web", "internet")
	words = trimEdges(words, "the", "a", "an", "for", "on")

	query := strings.Trim(join(words), "?!. ")
	if len(query) <= 1 {
		return "", errors.NewExtraction(SlotQuery, "search query is empty")
	}
	return query, nil
}

// EncyclopediaTopic strips "search" and "wikipedia" and returns the topic.
func EncyclopediaTopic(text string) (string, error) {
	words := removeWords(strings.Fields(text), "search", "wikipedia")
	words = trimEdges(words, "for", "on", "about")

	topic := strings.Trim(join(words), "?!. ")
	if topic == "" {
		return "", errors.NewExtraction(SlotQuery, "no topic given")
	}
	return topic, nil
}

// MediaTitle strips "play" and a trailing "on youtube" and returns the title.
func MediaTitle(text string) (string, error) {
	words := removeWords(strings.Fields(text), "play")
	words = removePhrases(words, "on youtube")

	title := strings.Trim(join(words), "?!. ")
	if title == "" {
		return "", errors.NewExtraction(SlotTitle, "nothing to play")
	}
	return title, nil
}
