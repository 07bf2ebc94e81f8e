// Package app provides the shell: a bubbletea model that applies the
// active theme, draws the layout chrome and shows the routed page.
package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/appshell/internal/layout"
	"github.com/jmylchreest/appshell/internal/pages"
	"github.com/jmylchreest/appshell/internal/router"
	"github.com/jmylchreest/appshell/internal/storage"
	"github.com/jmylchreest/appshell/internal/theme"
)

// DefaultAppName is shown in the header.
const DefaultAppName = "appshell"

const (
	statusTimeout  = 3 * time.Second
	resolveTimeout = 2 * time.Second
	eventBuffer    = 8
)

// Options configures a Shell. Zero values get working defaults.
type Options struct {
	Store        *theme.Store
	Router       *router.Router // nil = MustNewRouter(Store)
	Resolver     *theme.Resolver
	Renderer     *lipgloss.Renderer // Per SSH session when served remotely
	InitialPath  string
	AppName      string
	ShowKeybinds bool
	Logger       *slog.Logger
}

// Shell is the root model. All fields are owned by the bubbletea event
// loop; other goroutines reach it only through the events channel.
type Shell struct {
	store    *theme.Store
	router   *router.Router
	resolver *theme.Resolver
	renderer *lipgloss.Renderer
	logger   *slog.Logger
	history  *router.History

	appName      string
	showKeybinds bool

	keys     KeyMap
	help     help.Model
	address  textinput.Model
	viewport viewport.Model

	appearance theme.Appearance
	styles     theme.Styles

	width  int
	height int
	ready  bool

	editing  bool
	fullHelp bool

	status    string
	statusErr bool
	statusSeq int

	events      chan tea.Msg
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

// New creates a shell. The shell subscribes to the store; call Close when
// done with it.
func New(opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	store := opts.Store
	if store == nil {
		store = theme.NewStore(storage.NewMemory(), theme.StoreOptions{Logger: logger})
	}
	r := opts.Router
	if r == nil {
		r = MustNewRouter(store)
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = theme.NewResolver(logger, theme.NewRendererDetector(renderer))
	}
	appName := opts.AppName
	if appName == "" {
		appName = DefaultAppName
	}

	initial := opts.InitialPath
	if initial == "" {
		initial = HomePath
	}
	hist, err := router.NewHistory(initial)
	if err != nil {
		logger.Warn("invalid initial path, starting at home", "path", initial, "error", err)
		hist, _ = router.NewHistory(HomePath)
	}

	address := textinput.New()
	address.Prompt = "go to: "
	address.Placeholder = "/path"
	address.CharLimit = 256

	s := &Shell{
		store:        store,
		router:       r,
		resolver:     resolver,
		renderer:     renderer,
		logger:       logger,
		history:      hist,
		appName:      appName,
		showKeybinds: opts.ShowKeybinds,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		address:      address,
		events:       make(chan tea.Msg, eventBuffer),
		done:         make(chan struct{}),
	}

	s.unsubscribe = store.Subscribe(func(theme.Theme) {
		s.post(themeChangedMsg{})
	})
	store.SetPersistErrorHandler(func(err error) {
		s.post(statusMsg{text: "Theme not saved: " + err.Error(), isErr: true})
	})

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	s.applyAppearance(resolver.Resolve(ctx, store.Get()))
	cancel()

	return s
}

// Close detaches the shell from the store. It is safe to call more than once.
func (s *Shell) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.unsubscribe()
		s.store.SetPersistErrorHandler(nil)
	})
}

// post queues a message for the event loop without blocking the caller,
// which may be a store listener running on another goroutine.
func (s *Shell) post(msg tea.Msg) {
	select {
	case <-s.done:
	case s.events <- msg:
	default:
		s.logger.Debug("shell event queue full, dropping", "msg", msg)
	}
}

// CurrentPath returns the active location path.
func (s *Shell) CurrentPath() string {
	return s.history.Current().Path
}

// Appearance returns the appearance currently applied.
func (s *Shell) Appearance() theme.Appearance {
	return s.appearance
}

// Status returns the status line text and whether it is an error.
func (s *Shell) Status() (string, bool) {
	return s.status, s.statusErr
}

// Editing reports whether the address bar is open.
func (s *Shell) Editing() bool {
	return s.editing
}

type eventMsg struct {
	msg tea.Msg
}

type themeChangedMsg struct{}

type appearanceMsg struct {
	theme      theme.Theme
	appearance theme.Appearance
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct {
	seq int
}

// Init starts listening for store events.
func (s *Shell) Init() tea.Cmd {
	return s.waitForEvent
}

// waitForEvent blocks until a store event arrives or the shell closes.
func (s *Shell) waitForEvent() tea.Msg {
	select {
	case <-s.done:
		return nil
	case msg := <-s.events:
		return eventMsg{msg: msg}
	}
}

// Update handles messages and updates the model.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.ready = true

		s.viewport = viewport.New(msg.Width, layout.ContentHeight(msg.Height))
		s.address.Width = msg.Width - lipgloss.Width(s.address.Prompt) - 1
		s.help.Width = msg.Width
		s.refresh()
		return s, nil

	case eventMsg:
		_, cmd := s.Update(msg.msg)
		return s, tea.Batch(cmd, s.waitForEvent)

	case themeChangedMsg:
		// Coalesced: always apply the latest value.
		return s, s.syncAppearance(s.store.Get())

	case appearanceMsg:
		if msg.theme == s.store.Get() {
			s.applyAppearance(msg.appearance)
			s.refresh()
		}
		return s, nil

	case pages.ThemeChangedMsg:
		cmd := s.syncAppearance(msg.Theme)
		return s, tea.Batch(cmd, s.setStatus("Theme set to "+string(msg.Theme), false))

	case statusMsg:
		s.statusSeq++
		s.status = msg.text
		s.statusErr = msg.isErr
		seq := s.statusSeq
		return s, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})

	case clearStatusMsg:
		if msg.seq == s.statusSeq {
			s.status = ""
			s.statusErr = false
		}
		return s, nil
	}

	var cmd tea.Cmd
	if s.editing {
		s.address, cmd = s.address.Update(msg)
	} else {
		s.viewport, cmd = s.viewport.Update(msg)
	}
	return s, cmd
}

// handleKey handles key presses.
func (s *Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if s.editing {
		return s.handleAddressKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, s.keys.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keys.Help):
		s.fullHelp = !s.fullHelp
		s.refresh()
		return s, nil

	case key.Matches(msg, s.keys.Cancel):
		if s.fullHelp {
			s.fullHelp = false
			s.refresh()
		}
		return s, nil

	case key.Matches(msg, s.keys.CycleTheme):
		t := s.store.Cycle()
		cmd := s.syncAppearance(t)
		s.refresh()
		return s, tea.Batch(cmd, s.setStatus("Theme set to "+string(t), false))

	case key.Matches(msg, s.keys.Address):
		s.editing = true
		s.address.SetValue("")
		return s, s.address.Focus()

	case key.Matches(msg, s.keys.Back):
		if s.history.Back() {
			return s, s.onNavigate()
		}
		return s, nil

	case key.Matches(msg, s.keys.Forward):
		if s.history.Forward() {
			return s, s.onNavigate()
		}
		return s, nil
	}

	if !s.fullHelp {
		if kh, ok := s.currentMatch().Page.(pages.KeyHandler); ok {
			if cmd, handled := kh.HandleKey(msg); handled {
				s.refresh()
				return s, cmd
			}
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// handleAddressKey handles keys while the address bar is open.
func (s *Shell) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return s, tea.Quit

	case key.Matches(msg, s.keys.Go):
		target := strings.TrimSpace(s.address.Value())
		s.closeAddress()
		if target == "" {
			return s, nil
		}
		if _, err := s.history.Push(target); err != nil {
			return s, s.setStatus(err.Error(), true)
		}
		return s, s.onNavigate()

	case key.Matches(msg, s.keys.Cancel):
		s.closeAddress()
		return s, nil
	}

	var cmd tea.Cmd
	s.address, cmd = s.address.Update(msg)
	return s, cmd
}

func (s *Shell) closeAddress() {
	s.editing = false
	s.address.Blur()
	s.address.SetValue("")
}

// onNavigate re-renders for the new location.
func (s *Shell) onNavigate() tea.Cmd {
	s.fullHelp = false
	s.refresh()
	s.viewport.GotoTop()

	loc := s.history.Current()
	m := s.router.Resolve(loc.Path)
	s.logger.Debug("navigate", "path", loc.Path, "found", m.Found, "key", loc.Key)
	if !m.Found {
		return s.setStatus("No route for "+loc.Path, true)
	}
	return nil
}

func (s *Shell) currentMatch() router.Match {
	return s.router.Resolve(s.history.Current().Path)
}

func (s *Shell) setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// syncAppearance applies explicit themes immediately. System may need a
// D-Bus round trip, so it is resolved off the event loop.
func (s *Shell) syncAppearance(t theme.Theme) tea.Cmd {
	if t != theme.System {
		s.applyAppearance(s.resolver.Resolve(context.Background(), t))
		s.refresh()
		return nil
	}

	resolver := s.resolver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		return appearanceMsg{theme: t, appearance: resolver.Resolve(ctx, t)}
	}
}

func (s *Shell) applyAppearance(a theme.Appearance) {
	s.appearance = a
	s.styles = theme.StylesFor(s.renderer, a)

	s.help.Styles.ShortKey = s.styles.Key
	s.help.Styles.ShortDesc = s.styles.Muted
	s.help.Styles.ShortSeparator = s.styles.Border
	s.help.Styles.FullKey = s.styles.Key
	s.help.Styles.FullDesc = s.styles.Text
	s.help.Styles.FullSeparator = s.styles.Border
	s.help.Styles.Ellipsis = s.styles.Muted

	s.address.PromptStyle = s.styles.Address
	s.address.TextStyle = s.styles.Text
	s.address.PlaceholderStyle = s.styles.Muted
}

// refresh re-resolves the current location and re-renders the content.
func (s *Shell) refresh() {
	if !s.ready {
		return
	}
	s.viewport.SetContent(s.renderContent())
}

func (s *Shell) renderContent() string {
	style := s.styles.Content.Width(s.width)

	if s.fullHelp {
		s.help.ShowAll = true
		return style.Render(s.styles.Heading.Render("Keyboard Shortcuts") + "\n\n" + s.help.View(s.keys))
	}

	loc := s.history.Current()
	m := s.router.Resolve(loc.Path)
	ctx := pages.Context{
		Path:   loc.Path,
		Width:  s.width - s.styles.Content.GetHorizontalFrameSize(),
		Height: layout.ContentHeight(s.height) - s.styles.Content.GetVerticalFrameSize(),
		Theme:  s.store.Get(),
		Styles: s.styles,
	}
	return style.Render(m.Page.View(ctx))
}

// View renders the shell.
func (s *Shell) View() string {
	if !s.ready {
		return "Initializing..."
	}

	loc := s.history.Current()
	m := s.router.Resolve(loc.Path)

	frame := layout.Frame{
		AppName:   s.appName,
		PageTitle: m.Page.Title(),
		Location:  loc.String(),
		Theme:     s.store.Get(),
		Content:   s.viewport.View(),
		Status:    s.status,
		StatusErr: s.statusErr,
		Width:     s.width,
		Height:    s.height,
	}
	if s.editing {
		frame.Address = s.address.View()
	}
	if s.showKeybinds {
		frame.Keybinds = s.keybinds(m.Page)
	}

	return layout.Render(s.styles, frame)
}

// keybinds returns the footer binds for page, most important first.
func (s *Shell) keybinds(page pages.Page) []layout.Keybind {
	binds := []layout.Keybind{
		{Key: "q", Desc: "quit", Priority: 1},
		{Key: ":", Desc: "go", Priority: 2},
		{Key: "t", Desc: "theme", Priority: 3},
		{Key: "?", Desc: "help", Priority: 4},
		{Key: "[", Desc: "back", Priority: 6},
		{Key: "]", Desc: "forward", Priority: 7},
	}

	if h, ok := page.(interface{ ShortHelp() []key.Binding }); ok {
		for _, b := range h.ShortHelp() {
			binds = append(binds, layout.Keybind{Key: b.Help().Key, Desc: b.Help().Desc, Priority: 5})
		}
	}
	return binds
}
