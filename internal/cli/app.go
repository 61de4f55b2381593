package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wbsplanner/internal/client"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/mutation"
	"wbsplanner/internal/querycache"
	"wbsplanner/internal/session"
	"wbsplanner/internal/tui"
	"wbsplanner/internal/views"
	"wbsplanner/pkg/config"
	"wbsplanner/pkg/logger"
)

// Options are the process-level inputs of the command tree.
type Options struct {
	// Home holds config.yaml, session.yaml and the default log file.
	Home string
	Out  io.Writer
	Err  io.Writer
	// Confirm replaces the terminal prompt, mainly in tests.
	Confirm views.Confirmer
	// Interactive forces prompting on or off; nil detects the terminal.
	Interactive *bool
}

// DefaultHome is ~/.wbsplanner, or $WBS_HOME when set.
func DefaultHome() string {
	if h := os.Getenv("WBS_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wbsplanner"
	}
	return filepath.Join(home, ".wbsplanner")
}

type flags struct {
	server    string
	locale    string
	assumeYes bool
	verbose   bool
}

// app is assembled once per invocation, before the command runs.
type app struct {
	opts   Options
	flags  flags
	cfg    config.ClientConfig
	locale i18n.Locale
	logger *zap.Logger
	store  *session.Store
	nav    *session.Navigator
	client *client.Client
	env    *views.Env
}

func (a *app) setup() error {
	cfg, err := config.LoadClientConfig(filepath.Join(a.opts.Home, "config.yaml"))
	if err != nil {
		return err
	}
	if a.flags.server != "" {
		cfg.ServerURL = a.flags.server
	}
	if a.flags.locale != "" {
		cfg.Locale = a.flags.locale
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(a.opts.Home, "wbs.log")
	}
	if a.flags.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg
	a.locale = i18n.Parse(cfg.Locale)

	if err := os.MkdirAll(a.opts.Home, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", a.opts.Home, err)
	}
	a.logger = logger.NewLogger(logger.Options{File: cfg.LogFile, Level: cfg.LogLevel})

	store, err := session.Open(filepath.Join(a.opts.Home, "session.yaml"))
	if err != nil {
		return err
	}
	a.store = store
	a.nav = session.NewNavigator(store, a.opts.Err)
	a.client = client.New(client.Config{ServerURL: cfg.ServerURL, Timeout: cfg.Timeout}, store, a.nav, a.logger)

	styles := views.DefaultStyles()
	notify := views.NewConsole(a.opts.Out, styles)
	cache := querycache.New(querycache.WithLogger(a.logger))
	a.env = &views.Env{
		Queries:   views.NewQueries(a.client, cache),
		Mutations: mutation.New(a.client, cache, notify, a.locale, a.logger),
		Confirm:   a.confirmer(),
		Notify:    notify,
		Locale:    a.locale,
		Styles:    styles,
		Logger:    a.logger,
	}
	a.logger.Debug("Client ready", zap.String("server_url", cfg.ServerURL), zap.String("locale", string(a.locale)))
	return nil
}

func (a *app) interactive() bool {
	if a.opts.Interactive != nil {
		return *a.opts.Interactive
	}
	return tui.ShouldPrompt()
}

func (a *app) confirmer() views.Confirmer {
	if a.opts.Confirm != nil {
		return a.opts.Confirm
	}
	c := tui.NewConfirmer(a.flags.assumeYes)
	c.Interactive = a.interactive()
	return c
}

func (a *app) println(s string) {
	fmt.Fprintln(a.opts.Out, s)
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func atoi(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return n, nil
}

// projectArg validates the project id argument and returns it as the cache key form.
func projectArg(s string) (string, error) {
	n, err := atoi("project id", s)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}
