package web

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hpungsan/darek/internal/assistant"
	"github.com/hpungsan/darek/internal/config"
	"github.com/hpungsan/darek/internal/db"
	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/ops"
	"github.com/hpungsan/darek/internal/services"
)

type fakeWeather struct {
	city string
	err  error
}

func (f *fakeWeather) Current(_ context.Context, city string) (*services.Weather, error) {
	f.city = city
	if f.err != nil {
		return nil, f.err
	}
	return &services.Weather{City: city, Description: "clear sky", Temperature: 21.5, Humidity: 40, WindSpeed: 2}, nil
}

type fakeNews struct {
	limit int
	err   error
}

func (f *fakeNews) TopHeadlines(_ context.Context, limit int) ([]services.Article, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []services.Article{{Title: "One", URL: "https://news.test/1"}, {Title: "Two"}}, nil
}

type testEnv struct {
	h       *Handlers
	mux     http.Handler
	weather *fakeWeather
	news    *fakeNews
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		t.Fatalf("static sub-FS: %v", err)
	}

	env := &testEnv{weather: &fakeWeather{}, news: &fakeNews{}}
	env.h = &Handlers{
		db:  database,
		cfg: cfg,
		assistant: assistant.New(assistant.Options{
			Store:       ops.NewGateway(database),
			Picker:      assistant.First,
			DefaultCity: cfg.DefaultCity,
		}),
		weather:  env.weather,
		news:     env.news,
		renderer: NewRenderer(templateSub, "test", nil),
		log:      zap.NewNop(),
	}
	env.mux = env.h.routes(staticSub)
	return env
}

func (env *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	return w
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func getJSON(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Chat ---

func TestHandleChatPage(t *testing.T) {
	env := setupTest(t)

	for _, path := range []string{"/", "/chat"} {
		w := env.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, `action="/chat"`) {
			t.Errorf("GET %s body missing chat form", path)
		}
		if !strings.Contains(body, "darek test") {
			t.Errorf("GET %s body missing version footer", path)
		}
	}
}

func TestHandleChat_JSON(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, postJSON("/chat", `{"message": "add bread and milk to shopping list", "user_id": "alice"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}

	var reply assistant.Reply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(reply.Text, "Added 2 items") {
		t.Errorf("message = %q", reply.Text)
	}
	if reply.Intent != "add_shopping_item" {
		t.Errorf("intent = %q", reply.Intent)
	}
	if !reply.Saved {
		t.Error("saved = false, want true")
	}

	items, err := db.ListShoppingItems(context.Background(), env.h.db, "alice")
	if err != nil {
		t.Fatalf("ListShoppingItems: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("stored items = %d, want 2", len(items))
	}
}

func TestHandleChat_JSONValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing message", `{"user_id": "alice"}`, "Please provide a message"},
		{"invalid json", `{not json`, "Please provide a message"},
		{"blank message", `{"message": "   "}`, "Please provide a valid message"},
	}

	env := setupTest(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, postJSON("/chat", tt.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["message"] != tt.want {
				t.Errorf("message = %q, want %q", body["message"], tt.want)
			}
		})
	}
}

func TestHandleChat_FormRendersMarkdown(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, postForm("/chat", url.Values{"message": {"what is"}}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<strong>Web Search Ready!</strong>") {
		t.Errorf("reply not rendered as markdown: %s", body)
	}
	if !strings.Contains(body, `data-intent="web_search"`) {
		t.Error("body missing intent attribute")
	}
}

func TestHandleChat_FormEscapesInput(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, postForm("/chat", url.Values{"message": {"<script>alert(1)</script>"}, "user_id": {"bob"}}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("user input rendered unescaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("escaped user input missing from page")
	}
	if !strings.Contains(body, `value="bob"`) {
		t.Error("user id not carried into form")
	}
}

func TestHandleChat_FormEmptyMessage(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, postForm("/chat", url.Values{"message": {"  "}}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please provide a valid message") {
		t.Error("error page missing message")
	}
}

// --- Dashboard ---

func TestHandleDashboard(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	env.h.assistant.Process(ctx, "add bread and milk to shopping list", "alice")
	env.h.assistant.Process(ctx, "create a note pick up dry cleaning", "alice")
	env.h.assistant.Process(ctx, "start a 5 minute timer", "alice")

	w := env.do(t, getJSON("/dashboard?user_id=alice"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var out ops.DashboardOutput
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.ShoppingItems) != 2 || len(out.Notes) != 1 || len(out.Timers) != 1 {
		t.Errorf("dashboard = %+v", out)
	}
	if out.Reminders == nil || out.Todos == nil {
		t.Error("empty sections should be [] not null")
	}

	w = env.do(t, httptest.NewRequest(http.MethodGet, "/dashboard?user_id=alice", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("HTML status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"bread", "milk", "pick up dry cleaning", "5-minute timer", "5m"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard page missing %q", want)
		}
	}
}

func TestHandleDashboard_UserFromQuery(t *testing.T) {
	env := setupTest(t)
	env.h.assistant.Process(context.Background(), "add milk to shopping list", "alice")

	// Any caller naming alice sees alice's rows; other ids see nothing.
	for _, tt := range []struct {
		user string
		want int
	}{{"alice", 1}, {"mallory", 0}} {
		w := env.do(t, getJSON("/dashboard?user_id="+tt.user))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var out ops.DashboardOutput
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out.ShoppingItems) != tt.want {
			t.Errorf("user %s: shopping = %d, want %d", tt.user, len(out.ShoppingItems), tt.want)
		}
	}
}

func TestHandleDashboard_NoUser(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("HTML status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `name="user_id"`) {
		t.Error("dashboard page missing user form")
	}

	w = env.do(t, getJSON("/dashboard"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("JSON status = %d, want 400", w.Code)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"]["code"] != string(errors.ErrInvalidRequest) {
		t.Errorf("code = %v, want %s", body["error"]["code"], errors.ErrInvalidRequest)
	}
}

// --- History ---

func TestHandleHistory(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	env.h.assistant.Process(ctx, "hello", "alice")
	env.h.assistant.Process(ctx, "flibbertigibbet", "alice")
	env.h.assistant.Process(ctx, "thanks", "carol")

	w := env.do(t, getJSON("/history?user_id=alice&limit=1"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var out ops.HistoryOutput
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Pagination.Total != 2 || !out.Pagination.HasMore || len(out.Items) != 1 {
		t.Errorf("history = %+v", out)
	}

	w = env.do(t, httptest.NewRequest(http.MethodGet, "/history?user_id=alice", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("HTML status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "flibbertigibbet") || !strings.Contains(body, "hello") {
		t.Error("history page missing commands")
	}
	if strings.Contains(body, "thanks") {
		t.Error("history page leaked another user's command")
	}

	w = env.do(t, httptest.NewRequest(http.MethodGet, "/history", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("no user status = %d, want 400", w.Code)
	}
}

// --- Weather / News ---

func TestHandleWeather(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, getJSON("/weather?city=Oslo"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var out services.Weather
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.City != "Oslo" || out.Description != "clear sky" {
		t.Errorf("weather = %+v", out)
	}

	env.do(t, getJSON("/weather"))
	if env.weather.city != "London" {
		t.Errorf("city = %q, want default London", env.weather.city)
	}
}

func TestHandleWeather_Errors(t *testing.T) {
	env := setupTest(t)

	env.weather.err = errors.NewServiceNotFound("weather", "atlantis")
	w := env.do(t, getJSON("/weather?city=atlantis"))
	if w.Code != http.StatusNotFound {
		t.Errorf("not found status = %d, want 404", w.Code)
	}

	env.h.weather = nil
	w = env.do(t, getJSON("/weather"))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("nil service status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(errors.ErrServiceNotConfigured)) {
		t.Errorf("body = %s, want not configured code", w.Body.String())
	}
}

func TestHandleNews(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, getJSON("/news"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var out struct {
		Articles []services.Article `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Articles) != 2 || out.Articles[0].URL != "https://news.test/1" {
		t.Errorf("articles = %+v", out.Articles)
	}
	if env.news.limit != newsEndpointLimit {
		t.Errorf("limit = %d, want %d", env.news.limit, newsEndpointLimit)
	}

	env.news.err = errors.NewServiceTimeout("news")
	w = env.do(t, getJSON("/news"))
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("timeout status = %d, want 504", w.Code)
	}
}

// --- Plumbing ---

func TestSecurityHeaders(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := w.Header().Get("Content-Security-Policy"); !strings.Contains(got, "default-src 'self'") {
		t.Errorf("Content-Security-Policy = %q", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestStaticFiles(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRenderError_HTMX(t *testing.T) {
	env := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	req.Header.Set("HX-Request", "true")
	w := env.do(t, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), `<div class="error-message">`) {
		t.Errorf("body = %q, want fragment", w.Body.String())
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(Deps{Config: config.DefaultConfig()}, "test", "127.0.0.1", 8765)
	if srv.Addr != "127.0.0.1:8765" {
		t.Errorf("Addr = %q", srv.Addr)
	}
	if srv.Handler == nil {
		t.Error("Handler is nil")
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := string(renderMarkdown("**Weather in Paris**\n\nCurrently: Rain\nHumidity: 80%"))
	if !strings.Contains(got, "<strong>Weather in Paris</strong>") {
		t.Errorf("renderMarkdown() = %q, want bold", got)
	}
	if !strings.Contains(got, "<br") {
		t.Errorf("renderMarkdown() = %q, want hard line break", got)
	}

	got = string(renderMarkdown("<img src=x onerror=alert(1)>"))
	if strings.Contains(got, "<img") {
		t.Errorf("renderMarkdown() = %q, raw HTML passed through", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{300, "5m"},
		{30, "30s"},
		{90, "1m30s"},
		{7200, "2h"},
		{0, "0s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDeref(t *testing.T) {
	s := "title"
	if got := deref(&s); got != "title" {
		t.Errorf("deref(&s) = %v", got)
	}
	var nilStr *string
	if got := deref(nilStr); got != "" {
		t.Errorf("deref(nil *string) = %v, want empty", got)
	}
	if hasValue(nilStr) {
		t.Error("hasValue(nil *string) = true")
	}
	if !hasValue(&s) {
		t.Error("hasValue(&s) = false")
	}
}
