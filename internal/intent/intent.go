// Package intent maps a normalized command to exactly one Intent using an
// ordered table of trigger rules.
package intent

import (
	"strings"
	"unicode"
)

// Intent is the action category a command is classified into.
type Intent string

const (
	Time               Intent = "time"
	SetReminder        Intent = "set_reminder"
	AddTodo            Intent = "add_todo"
	AddShoppingItem    Intent = "add_shopping_item"
	SearchEncyclopedia Intent = "search_encyclopedia"
	PlayMedia          Intent = "play_media"
	StartTimer         Intent = "start_timer"
	Calculate          Intent = "calculate"
	Translate          Intent = "translate"
	GetNews            Intent = "get_news"
	CreateNote         Intent = "create_note"
	TellJoke           Intent = "tell_joke"
	GetWeather         Intent = "get_weather"
	Trivia             Intent = "trivia"
	HabitStub          Intent = "habit_stub"
	CalendarStub       Intent = "calendar_stub"
	SmallTalkHowAreYou Intent = "small_talk_how_are_you"
	WebSearch          Intent = "web_search"
	Greeting           Intent = "greeting"
	Capabilities       Intent = "capabilities"
	Thanks             Intent = "thanks"
	Farewell           Intent = "farewell"
	Fallback           Intent = "fallback"
)

// WebSearchTriggers are the phrases that route a command to WebSearch.
// Slot extraction strips the same phrases to recover the query.
var WebSearchTriggers = []string{"search", "google", "find", "look up", "what is", "who is", "tell me about"}

// utterance is a normalized command plus its word set.
type utterance struct {
	text  string
	words map[string]bool
}

func newUtterance(text string) utterance {
	u := utterance{text: text, words: make(map[string]bool)}
	for _, w := range Words(text) {
		u.words[w] = true
	}
	return u
}

// contains reports whether any phrase occurs as a substring.
func (u utterance) contains(phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(u.text, p) {
			return true
		}
	}
	return false
}

// hasWord reports whether any of words occurs as a whole word.
func (u utterance) hasWord(words ...string) bool {
	for _, w := range words {
		if u.words[w] {
			return true
		}
	}
	return false
}

type rule struct {
	intent Intent
	match  func(u utterance) bool
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{Time, func(u utterance) bool { return u.hasWord("time") }},
	{SetReminder, func(u utterance) bool { return u.contains("set a reminder", "remind me") }},
	{AddTodo, func(u utterance) bool { return u.contains("add to my to-do list", "todo") }},
	{AddShoppingItem, func(u utterance) bool { return u.contains("shopping") }},
	{SearchEncyclopedia, func(u utterance) bool { return u.contains("search", "wikipedia") }},
	{PlayMedia, func(u utterance) bool { return u.contains("play") }},
	{StartTimer, func(u utterance) bool { return u.contains("start") && u.contains("timer") }},
	{Calculate, func(u utterance) bool { return u.contains("calculate", "math") }},
	{Translate, func(u utterance) bool { return u.contains("translate") }},
	{GetNews, func(u utterance) bool { return u.contains("news") }},
	{CreateNote, func(u utterance) bool { return u.contains("note") && u.contains("create", "make", "add") }},
	{TellJoke, func(u utterance) bool { return u.contains("joke") }},
	{GetWeather, func(u utterance) bool { return u.contains("weather") }},
	{Trivia, func(u utterance) bool { return u.contains("trivia", "quiz") }},
	{HabitStub, func(u utterance) bool { return u.contains("habit", "track") }},
	{CalendarStub, func(u utterance) bool { return u.contains("calendar", "schedule") }},
	{SmallTalkHowAreYou, func(u utterance) bool { return u.contains("how are you") }},
	{WebSearch, func(u utterance) bool { return u.contains(WebSearchTriggers...) }},
	{Greeting, func(u utterance) bool {
		return u.hasWord("hi", "hey") || u.contains("hello", "good morning", "good afternoon", "good evening")
	}},
	{Capabilities, func(u utterance) bool { return u.contains("what can you do", "help", "capabilities") }},
	{Thanks, func(u utterance) bool { return u.contains("thank you", "thanks") }},
	{Farewell, func(u utterance) bool { return u.contains("bye", "goodbye", "see you") }},
}

// Classify returns the first intent whose rule matches normalized, or Fallback.
// It never fails.
func Classify(normalized string) Intent {
	u := newUtterance(normalized)
	for _, r := range rules {
		if r.match(u) {
			return r.intent
		}
	}
	return Fallback
}

// Priority returns the rule order, Fallback last.
func Priority() []Intent {
	out := make([]Intent, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.intent)
	}
	return append(out, Fallback)
}

// Words splits text into words, dropping surrounding punctuation.
// Hyphens and apostrophes inside a word are kept ("to-do", "what's").
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	})
}
