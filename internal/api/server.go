package api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"adfilter/internal/storage"
	"adfilter/internal/worker"
)

//go:embed templates/*.html
var templateFS embed.FS

// ChatLister exposes the ordered chat list the dashboard renders.
type ChatLister interface {
	Chats() []worker.ChatView
}

type Server struct {
	echo      *echo.Echo
	repo      storage.SuppressionRepository
	chats     ChatLister
	templates *template.Template
	sse       *SSEBroker
}

type SSEBroker struct {
	clients map[chan string]bool
	mu      sync.RWMutex
}

func NewSSEBroker() *SSEBroker {
	return &SSEBroker{clients: make(map[chan string]bool)}
}

func (b *SSEBroker) Subscribe() chan string {
	ch := make(chan string, 10)
	b.mu.Lock()
	b.clients[ch] = true
	b.mu.Unlock()
	return ch
}

func (b *SSEBroker) Unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

func (b *SSEBroker) Broadcast(msg string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

type SuppressionView struct {
	ChatTitle string
	URL       string
	Action    string
	TimeAgo   string
}

func NewServer(repo storage.SuppressionRepository, chats ChatLister) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))

	s := &Server{
		echo:      e,
		repo:      repo,
		chats:     chats,
		templates: tmpl,
		sse:       NewSSEBroker(),
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.index)
	s.echo.GET("/health", s.health)
	s.echo.GET("/api/stats", s.stats)
	s.echo.GET("/api/suppressions", s.getSuppressions)
	s.echo.GET("/api/chats", s.getChats)
	s.echo.GET("/api/events", s.events)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully, waiting for in-flight handlers so
// nothing is still reading the order slot or registry when the filter mode
// is torn down afterwards.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

func (s *Server) Broadcast(msg string) {
	s.sse.Broadcast(msg)
}

func (s *Server) index(c echo.Context) error {
	suppressions, _ := s.repo.FindRecent(c.Request().Context(), 20)

	views := make([]SuppressionView, len(suppressions))
	for i, sup := range suppressions {
		views[i] = SuppressionView{
			ChatTitle: sup.ChatTitle,
			URL:       sup.URL,
			Action:    sup.Action,
			TimeAgo:   timeAgo(sup.CreatedAt),
		}
	}

	stats, _ := s.repo.Stats(c.Request().Context())

	data := map[string]any{
		"Stats":        stats,
		"Suppressions": views,
		"Chats":        s.chats.Chats(),
	}

	return s.render(c, "index.html", data)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) stats(c echo.Context) error {
	stats, err := s.repo.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) getSuppressions(c echo.Context) error {
	suppressions, err := s.repo.FindRecent(c.Request().Context(), 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, suppressions)
}

func (s *Server) getChats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.chats.Chats())
}

func (s *Server) events(c echo.Context) error {
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")

	ch := s.sse.Subscribe()
	defer s.sse.Unsubscribe(ch)

	fmt.Fprintf(c.Response(), ": ping\n\n")
	c.Response().Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case msg := <-ch:
			fmt.Fprintf(c.Response(), "event: suppression\n")
			for _, line := range strings.Split(msg, "\n") {
				fmt.Fprintf(c.Response(), "data: %s\n", line)
			}
			fmt.Fprintf(c.Response(), "\n")
			c.Response().Flush()
		}
	}
}

func (s *Server) render(c echo.Context, name string, data any) error {
	c.Response().Header().Set("Content-Type", "text/html")
	err := s.templates.ExecuteTemplate(c.Response(), name, data)
	if err != nil {
		c.Logger().Error(err)
	}
	return err
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
