package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/appshell/internal/app"
	"github.com/jmylchreest/appshell/internal/config"
	"github.com/jmylchreest/appshell/internal/storage"
	"github.com/jmylchreest/appshell/internal/theme"
)

const shutdownTimeout = 30 * time.Second

var serveOpts struct {
	host    string
	port    int
	hostKey string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shell over SSH",
	Long: `Serve the interactive shell over SSH.

Every connection gets its own shell. Theme preferences are kept per SSH
user in the same storage file, and "system" follows the connecting
terminal's background.

Examples:
  appshell serve --port 2222
  ssh -p 2222 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOpts.host, "host", "",
		"Listen host (default: serve.host from config)")
	serveCmd.Flags().IntVar(&serveOpts.port, "port", 0,
		"Listen port (default: serve.port from config)")
	serveCmd.Flags().StringVar(&serveOpts.hostKey, "host-key", "",
		"SSH host key path, created if missing (default: in the data directory)")
}

func runServe(cmd *cobra.Command, args []string) error {
	c := getConfig()

	host := c.Serve.Host
	if serveOpts.host != "" {
		host = serveOpts.host
	}
	port := c.Serve.Port
	if serveOpts.port != 0 {
		port = serveOpts.port
	}
	hostKey := c.HostKeyPath()
	if serveOpts.hostKey != "" {
		hostKey = serveOpts.hostKey
	}
	idle, err := c.IdleTimeout()
	if err != nil {
		return err
	}

	// Sessions build their own table around their own store; check it once
	// before accepting connections.
	if _, err := app.NewRouter(getThemeStore()); err != nil {
		return fmt.Errorf("build routes: %w", err)
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(idle),
		wish.WithMiddleware(
			bm.Middleware(sessionHandler(c)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create ssh server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting ssh server", "address", addr, "host_key", hostKey, "idle_timeout", idle)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("stopping ssh server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh shutdown: %w", err)
	}
	return nil
}

// userStorageKeyPrefix namespaces a user's entries in the shared file.
func userStorageKeyPrefix(user string) string {
	return "user/" + user + "/"
}

// newSessionShell builds the shell for one SSH session around its own
// store and renderer. The renderer's background is read here, before the
// program starts reading the session's input.
func newSessionShell(c *config.Config, st *theme.Store, renderer *lipgloss.Renderer, l *slog.Logger) (*app.Shell, error) {
	routes, err := app.NewRouter(st)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}
	return app.New(app.Options{
		Store:        st,
		Router:       routes,
		Resolver:     app.NewResolver(renderer, false, l),
		Renderer:     renderer,
		InitialPath:  c.UI.InitialPath,
		ShowKeybinds: c.UI.ShowHelp,
		Logger:       l,
	}), nil
}

// sessionHandler builds a shell for each SSH session.
func sessionHandler(c *config.Config) bm.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		sessionID := ulid.Make().String()
		l := logger.With("session", sessionID, "user", sess.User())

		st := theme.NewStore(storage.NewPrefixed(fileStorage, userStorageKeyPrefix(sess.User())), theme.StoreOptions{
			DefaultTheme: c.DefaultTheme(l),
			StorageKey:   c.Theme.StorageKey,
			Logger:       l,
		})

		shell, err := newSessionShell(c, st, bm.MakeRenderer(sess), l)
		if err != nil {
			l.Error("failed to start session", "error", err)
			wish.Fatalln(sess, "appshell: "+err.Error())
			return nil, nil
		}

		var watcher *theme.Watcher
		if c.Theme.Watch {
			watcher = theme.NewWatcher(st, storagePath(), l)
			if err := watcher.Start(sess.Context()); err != nil {
				l.Warn("failed to start storage watcher", "error", err)
				watcher = nil
			}
		}

		go func() {
			<-sess.Context().Done()
			if watcher != nil {
				watcher.Stop()
			}
			shell.Close()
			l.Info("session closed")
		}()

		l.Info("session opened", "theme", st.Get(), "appearance", shell.Appearance())
		return shell, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
