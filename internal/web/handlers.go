package web

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/darek/internal/assistant"
	"github.com/hpungsan/darek/internal/config"
	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/ops"
	"github.com/hpungsan/darek/internal/services"
)

// maxChatBody caps the size of a chat request body.
const maxChatBody = 64 << 10

// newsEndpointLimit is how many headlines GET /news returns.
const newsEndpointLimit = 5

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db        *sql.DB
	cfg       *config.Config
	assistant Commander
	weather   assistant.WeatherService
	news      assistant.NewsService
	renderer  *Renderer
	log       *zap.Logger
}

// chatRequest is the JSON body of POST /chat.
type chatRequest struct {
	Message *string `json:"message"`
	UserID  string  `json:"user_id"`
}

// HandleChatPage handles GET / and GET /chat, the empty chat form.
func (h *Handlers) HandleChatPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "chat", ChatPageData{
		PageData: h.renderer.page("Chat", "chat"),
		UserID:   r.URL.Query().Get("user_id"),
	})
}

// HandleChat handles POST /chat. JSON bodies get a JSON reply; form posts
// re-render the chat page with the reply.
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.handleChatJSON(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	message := r.FormValue("message")
	userID := strings.TrimSpace(r.FormValue("user_id"))
	if strings.TrimSpace(message) == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("Please provide a valid message"))
		return
	}

	reply := h.assistant.Process(r.Context(), message, userID)

	h.renderer.renderPage(w, r, "chat", ChatPageData{
		PageData: h.renderer.page("Chat", "chat"),
		UserID:   userID,
		Message:  message,
		Reply:    renderMarkdown(reply.Text),
		Intent:   string(reply.Intent),
		HasReply: true,
	})
}

func (h *Handlers) handleChatJSON(w http.ResponseWriter, r *http.Request) {
	var body chatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxChatBody)).Decode(&body); err != nil || body.Message == nil {
		renderJSON(w, http.StatusBadRequest, map[string]string{"message": "Please provide a message"})
		return
	}
	if strings.TrimSpace(*body.Message) == "" {
		renderJSON(w, http.StatusBadRequest, map[string]string{"message": "Please provide a valid message"})
		return
	}

	reply := h.assistant.Process(r.Context(), *body.Message, body.UserID)
	renderJSON(w, http.StatusOK, reply)
}

// HandleDashboard handles GET /dashboard?user_id=: everything stored for a user.
// user_id is trusted as given; the web layer does no authentication.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	data := DashboardPageData{
		PageData: h.renderer.page("Dashboard", "dashboard"),
		UserID:   userID,
	}

	// No user yet: show the lookup form
	if userID == "" && !wantsJSON(r) {
		h.renderer.renderPage(w, r, "dashboard", data)
		return
	}

	out, err := ops.Dashboard(r.Context(), h.db, userID)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}

	data.Dashboard = out
	h.renderer.renderPage(w, r, "dashboard", data)
}

// HandleHistory handles GET /history?user_id=: a user's past commands, newest first.
// user_id is trusted as given; the web layer does no authentication.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))

	out, err := ops.History(r.Context(), h.db, ops.HistoryListInput{
		UserID: userID,
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}

	h.renderer.renderPage(w, r, "history", HistoryPageData{
		PageData:   h.renderer.page("History", "history"),
		UserID:     userID,
		Items:      out.Items,
		Pagination: out.Pagination,
	})
}

// HandleWeather handles GET /weather?city=: current conditions as JSON.
func (h *Handlers) HandleWeather(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" && h.cfg != nil {
		city = h.cfg.DefaultCity
	}
	if h.weather == nil {
		renderJSONError(w, errors.NewServiceNotConfigured(services.ServiceWeather, "WEATHER_API_KEY"))
		return
	}

	weather, err := h.weather.Current(r.Context(), city)
	if err != nil {
		h.log.Debug("weather endpoint failed", zap.String("city", city), zap.Error(err))
		renderJSONError(w, asDarekError(err))
		return
	}
	renderJSON(w, http.StatusOK, weather)
}

// HandleNews handles GET /news: top headlines as JSON.
func (h *Handlers) HandleNews(w http.ResponseWriter, r *http.Request) {
	if h.news == nil {
		renderJSONError(w, errors.NewServiceNotConfigured(services.ServiceNews, "NEWS_API_KEY"))
		return
	}

	articles, err := h.news.TopHeadlines(r.Context(), newsEndpointLimit)
	if err != nil {
		h.log.Debug("news endpoint failed", zap.Error(err))
		renderJSONError(w, asDarekError(err))
		return
	}
	// Ensure we return an empty array rather than nil
	if articles == nil {
		articles = []services.Article{}
	}
	renderJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
