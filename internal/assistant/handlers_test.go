package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/services"
	"github.com/hpungsan/darek/internal/translate"
)

func TestHandleTime(t *testing.T) {
	d, _ := testDispatcher(t, Options{})

	got := d.ProcessCommand(context.Background(), "what time is it", "")
	if got != "The current time is 03:04 PM." {
		t.Errorf("reply = %q", got)
	}
}

func TestHandleCalculate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"calculate 15 + 25", "🧮 15 + 25 = 40"},
		{"calculate (2 + 3) * 4", "🧮 (2 + 3) * 4 = 20"},
		{"calculate 10 / 4", "🧮 10 / 4 = 2.5"},
		{"calculate 15% of 200", "🧮 15% of 200 = 30.00"},
		{"math 12.5 percent of 80", "🧮 12.5% of 80 = 10.00"},
		{"calculate rm -rf /", hintMath},
		{"calculate something", hintMath},
		{"calculate 5 / 0", failMath},
		{"calculate 2 ** 3", failMath},
	}

	d, _ := testDispatcher(t, Options{})
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := d.ProcessCommand(context.Background(), tt.input, ""); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleTranslate_EveryPhrase(t *testing.T) {
	d, _ := testDispatcher(t, Options{})

	for _, lang := range translate.Languages() {
		for _, phrase := range translate.Phrases(lang) {
			want, _ := translate.Lookup(lang, phrase)
			got := d.ProcessCommand(context.Background(), fmt.Sprintf("translate %s to %s", phrase, lang), "")
			if !strings.Contains(got, "'"+want+"'") {
				t.Errorf("translate %q to %s = %q, want %q", phrase, lang, got, want)
			}
		}
	}
}

func TestHandleTranslate_Hints(t *testing.T) {
	d, _ := testDispatcher(t, Options{})

	got := d.ProcessCommand(context.Background(), "translate hello to German", "")
	if got != "🌐 Translation: 'hello' in German is 'hallo'" {
		t.Errorf("reply = %q", got)
	}

	got = d.ProcessCommand(context.Background(), "translate banana to french", "")
	if !strings.HasPrefix(got, "🌐 I can translate these phrases to French: hello, goodbye") {
		t.Errorf("unknown phrase reply = %q", got)
	}
	if !strings.Contains(got, "food") {
		t.Errorf("unknown phrase reply = %q, want full phrase list", got)
	}

	got = d.ProcessCommand(context.Background(), "translate hello to klingon", "")
	if !strings.HasPrefix(got, "🌐 I support translation to: spanish, french") {
		t.Errorf("unknown language reply = %q", got)
	}
}

func TestHandleTimer(t *testing.T) {
	d, store := testDispatcher(t, Options{})

	got := d.ProcessCommand(context.Background(), "start a 5 minute timer", "u1")
	if got != "⏰ Started a 5-minute timer. I'll notify you when it's done!" {
		t.Errorf("reply = %q", got)
	}
	got = d.ProcessCommand(context.Background(), "start a 45 second timer", "u1")
	if got != "⏰ Started a 45-second timer. I'll notify you when it's done!" {
		t.Errorf("reply = %q", got)
	}

	if len(store.timers) != 2 {
		t.Fatalf("timers = %d, want 2", len(store.timers))
	}
	if store.timers[0].DurationSeconds != 300 || store.timers[0].Name != "5-minute timer" {
		t.Errorf("timers[0] = %+v", store.timers[0])
	}
	if store.timers[1].DurationSeconds != 45 {
		t.Errorf("timers[1].DurationSeconds = %d, want 45", store.timers[1].DurationSeconds)
	}

	for _, input := range []string{"start a timer", "start a 5 hour timer"} {
		if got := d.ProcessCommand(context.Background(), input, "u1"); got != hintTimer {
			t.Errorf("%q reply = %q, want hint", input, got)
		}
	}
}

func TestHandleNote(t *testing.T) {
	d, store := testDispatcher(t, Options{})

	got := d.ProcessCommand(context.Background(), "make a note that the meeting moved to friday", "u1")
	if got != "📝 Created a note: 'the meeting moved to friday'" {
		t.Errorf("reply = %q", got)
	}
	if len(store.notes) != 1 || store.notes[0].Title != nil {
		t.Errorf("notes = %+v, want one untitled note", store.notes)
	}

	if got := d.ProcessCommand(context.Background(), "create a note", "u1"); got != hintNote {
		t.Errorf("reply = %q, want %q", got, hintNote)
	}
}

func TestHandleWeather(t *testing.T) {
	weather := &fakeWeather{w: &services.Weather{
		City:        "Paris",
		Description: "light rain",
		Temperature: 12.6,
		FeelsLike:   10.4,
		Humidity:    81,
		WindSpeed:   4.1,
	}}
	d, _ := testDispatcher(t, Options{Weather: weather})

	got := d.ProcessCommand(context.Background(), "What's the weather in Paris?", "")
	want := "🌤️ **Weather in Paris**\n\nCurrently: Light Rain\nTemperature: 13°C (feels like 10°C)\nHumidity: 81%\nWind Speed: 4.1 m/s"
	if got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
	if weather.city != "paris" {
		t.Errorf("city = %q, want %q", weather.city, "paris")
	}

	d.ProcessCommand(context.Background(), "weather", "")
	if weather.city != "London" {
		t.Errorf("city = %q, want default city", weather.city)
	}
}

func TestHandleWeather_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", errors.NewServiceNotFound("weather", "atlantis"), "❌ Couldn't find weather data for 'atlantis'. Please check the city name and try again."},
		{"not configured", errors.NewServiceNotConfigured("weather", "WEATHER_API_KEY"), "🔑 " + weatherNotConfigured},
		{"unauthorized", errors.NewServiceUnauthorized("weather"), "🔑 " + weatherRejected},
		{"timeout", errors.NewServiceTimeout("weather"), "🌐 " + weatherUnreachable},
		{"unreachable", errors.NewServiceUnreachable("weather", fmt.Errorf("dial tcp")), "🌐 " + weatherUnreachable},
		{"other", fmt.Errorf("boom"), "⚠️ " + weatherFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := testDispatcher(t, Options{Weather: &fakeWeather{err: tt.err}})
			if got := d.ProcessCommand(context.Background(), "weather in atlantis", ""); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}

	d, _ := testDispatcher(t, Options{})
	if got := d.ProcessCommand(context.Background(), "weather in rome", ""); got != "🔑 "+weatherNotConfigured {
		t.Errorf("nil service reply = %q", got)
	}
}

func TestHandleNews(t *testing.T) {
	news := &fakeNews{articles: []services.Article{{Title: "First"}, {Title: "Second"}}}
	d, _ := testDispatcher(t, Options{News: news, NewsLimit: 3})

	got := d.ProcessCommand(context.Background(), "what's the news", "")
	if got != "📰 Latest News Headlines:\n\n1. First\n2. Second" {
		t.Errorf("reply = %q", got)
	}
	if news.limit != 3 {
		t.Errorf("limit = %d, want 3", news.limit)
	}

	tests := []struct {
		name string
		news NewsService
		want string
	}{
		{"nil service", nil, "📰 " + newsNotConfigured},
		{"not configured", &fakeNews{err: errors.NewServiceNotConfigured("news", "NEWS_API_KEY")}, "📰 " + newsNotConfigured},
		{"unreachable", &fakeNews{err: errors.NewServiceTimeout("news")}, "📰 " + newsUnavailable},
		{"empty", &fakeNews{}, "📰 " + newsEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := testDispatcher(t, Options{News: tt.news})
			if got := d.ProcessCommand(context.Background(), "news", ""); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleEncyclopedia(t *testing.T) {
	tests := []struct {
		name string
		svc  *fakeEncyclopedia
		want string
	}{
		{
			"found",
			&fakeEncyclopedia{summary: &services.Summary{Title: "Black hole", Extract: "A black hole is a region of spacetime."}},
			"Here's what I found about black holes: A black hole is a region of spacetime.",
		},
		{"ambiguous", &fakeEncyclopedia{err: errors.NewServiceAmbiguous("encyclopedia", "black holes")}, "Multiple results found for black holes. Try being more specific."},
		{"not found", &fakeEncyclopedia{err: errors.NewServiceNotFound("encyclopedia", "black holes")}, "Sorry, I could not find a Wikipedia page for black holes."},
		{"timeout", &fakeEncyclopedia{err: errors.NewServiceTimeout("encyclopedia")}, encyclopediaFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := testDispatcher(t, Options{Encyclopedia: tt.svc})
			if got := d.ProcessCommand(context.Background(), "search black holes", ""); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}

	d, _ := testDispatcher(t, Options{})
	if got := d.ProcessCommand(context.Background(), "wikipedia", ""); got != hintTopic {
		t.Errorf("reply = %q, want %q", got, hintTopic)
	}
}

func TestHandleMedia(t *testing.T) {
	media := &fakeMedia{}
	d, _ := testDispatcher(t, Options{Media: media})

	if got := d.ProcessCommand(context.Background(), "play bohemian rhapsody on youtube", ""); got != "🎵 Playing bohemian rhapsody on YouTube." {
		t.Errorf("reply = %q", got)
	}
	if media.title != "bohemian rhapsody" {
		t.Errorf("title = %q", media.title)
	}

	failing, _ := testDispatcher(t, Options{Media: &fakeMedia{err: errors.NewServiceUnreachable("media", fmt.Errorf("exec: not found"))}})
	if got := failing.ProcessCommand(context.Background(), "play jazz", ""); got != "🎵 I would play jazz for you, but there was an issue opening YouTube." {
		t.Errorf("reply = %q", got)
	}

	if got := d.ProcessCommand(context.Background(), "play", ""); got != hintMedia {
		t.Errorf("reply = %q, want %q", got, hintMedia)
	}
}

func TestHandleWebSearch(t *testing.T) {
	tests := []struct {
		name   string
		answer *services.Answer
		want   string
	}{
		{
			"abstract",
			&services.Answer{Kind: services.AnswerAbstract, Text: "Quantum computing uses qubits.", Source: "en.wikipedia.org"},
			"🔍 **Quantum Computing**\n\nQuantum computing uses qubits.\n\n📖 Source: en.wikipedia.org",
		},
		{
			"definition",
			&services.Answer{Kind: services.AnswerDefinition, Text: "computing with qubits", Source: "Dictionary"},
			"🔍 **Definition: Quantum Computing**\n\ncomputing with qubits\n\n📖 Source: Dictionary",
		},
		{
			"direct answer",
			&services.Answer{Kind: services.AnswerDirect, Text: "42"},
			"🔍 **Quantum Computing**\n\n42",
		},
		{
			"related",
			&services.Answer{Kind: services.AnswerRelated, Text: "Quantum computer - a machine.", Source: "DuckDuckGo"},
			"🔍 **Quantum Computing**\n\nQuantum computer - a machine.\n\n📖 Source: DuckDuckGo",
		},
		{
			"no detail",
			&services.Answer{Kind: services.AnswerNoDetail},
			"🔍 **Search: quantum computing**\n\n" + searchNoDetail,
		},
		{
			"nothing",
			&services.Answer{Kind: services.AnswerNone},
			"🔍 **Search: quantum computing**\n\n" + searchNothing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &fakeSearch{answer: tt.answer}
			d, _ := testDispatcher(t, Options{Search: search})

			if got := d.ProcessCommand(context.Background(), "what is quantum computing?", ""); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
			if search.query != "quantum computing" {
				t.Errorf("query = %q, want %q", search.query, "quantum computing")
			}
		})
	}
}

func TestHandleWebSearch_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", errors.NewServiceTimeout("search"), "🔍 " + searchTimeout},
		{"unreachable", errors.NewServiceUnreachable("search", fmt.Errorf("dial tcp")), "🔍 " + searchUnreachable},
		{"other", errors.NewServiceNotFound("search", "x"), "🔍 " + searchUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := testDispatcher(t, Options{Search: &fakeSearch{err: tt.err}})
			if got := d.ProcessCommand(context.Background(), "who is ada lovelace", ""); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}

	d, _ := testDispatcher(t, Options{Search: &fakeSearch{}})
	if got := d.ProcessCommand(context.Background(), "tell me about", ""); got != "🔍 "+hintSearch {
		t.Errorf("empty query reply = %q", got)
	}
}

func TestFixedReplies(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tell me a joke", "😄 " + jokes[0]},
		{"give me some trivia", triviaReplies[0]},
		{"track my habit", "📊 " + habitReply},
		{"check my calendar", "📅 " + calendarReply},
		{"how are you doing", howAreYouReplies[0]},
		{"hi darek", greetingReplies[0]},
		{"what can you do", capabilitiesReply},
		{"thank you so much", thanksReplies[0]},
		{"see you later", farewellReplies[0]},
	}

	d, _ := testDispatcher(t, Options{})
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := d.ProcessCommand(context.Background(), tt.input, ""); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}
