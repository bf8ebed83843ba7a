package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/gophchat/internal/config"
	"github.com/dmitrijs2005/gophchat/internal/cryptox"
	"github.com/dmitrijs2005/gophchat/internal/kvstore"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/repositories/chats"
	"github.com/dmitrijs2005/gophchat/internal/repositories/users"
	"github.com/dmitrijs2005/gophchat/internal/services"
)

// App owns the wired-together application: config, logger, controllers, and
// the lifetime of the background sync loop.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *services.SessionService
	chat    *services.ChatService

	reader *bufio.Reader
	out    io.Writer

	stopSync context.CancelFunc
}

// NewApp constructs the application: logger, durable key-value store,
// repositories, cipher, and the two controllers. Nothing is global; every
// dependency is built here once and injected.
func NewApp(c *config.Config) (*App, error) {
	log, err := newLogger(c)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	store, err := kvstore.NewFileStore(c.StorageDir, c.StoragePassword)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	userRepo := users.NewKVRepository(store)
	chatRepo := chats.NewKVRepository(store, log)
	cipher := cryptox.NewCipher()

	session := services.NewSessionService(userRepo, log)
	chat := services.NewChatService(session, chatRepo, userRepo, cipher, log)

	return &App{
		config:  c,
		log:     log,
		session: session,
		chat:    chat,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func newLogger(c *config.Config) (logging.Logger, error) {
	if c.LogBackend == config.LogBackendZap {
		return logging.NewZapLogger(c.Development)
	}
	level := slog.LevelInfo
	if c.Development {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return logging.NewSlogLogger(slog.New(h)), nil
}

// Run resumes any persisted session, starts the sync loop when signed in,
// and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.session.Resume(ctx)
	if a.session.Authenticated() {
		a.startSync(ctx)
	}
	defer a.cancelSync()

	fmt.Fprintln(a.out, "Welcome to GophChat CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) getStatus() string {
	user := a.session.User()
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", user.Name)
}

// startSync loads the chat projection and launches the polling loop. The
// loop lives until cancelSync or the surrounding context ends.
func (a *App) startSync(ctx context.Context) {
	syncCtx, cancel := context.WithCancel(ctx)
	a.stopSync = cancel

	a.chat.Load(syncCtx)
	go a.chat.Run(syncCtx, a.config.PollInterval)
}

func (a *App) cancelSync() {
	if a.stopSync != nil {
		a.stopSync()
		a.stopSync = nil
	}
}
