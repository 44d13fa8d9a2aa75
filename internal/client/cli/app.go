package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/codereviewer/internal/client/client"
	"github.com/dmitrijs2005/codereviewer/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// API is the subset of the backend client the CLI uses.
type API interface {
	Register(ctx context.Context, name, email string, password []byte) (*client.Profile, error)
	Login(ctx context.Context, email string, password []byte) error
	Profile(ctx context.Context) (*client.Profile, error)
	Models(ctx context.Context) (*client.Models, error)
	Review(ctx context.Context, code, model string) (string, error)
	Ping(ctx context.Context) error
	SetToken(token string)
}

type App struct {
	config *config.Config
	api    API
	email  string
	reader *bufio.Reader

	mu   sync.RWMutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

// Run starts the status watcher and blocks in the REPL until exit.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Welcome to the code review CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher pings the server once right away, then every
// interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(pingCtx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
