package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/contactbook"
	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/browse"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/demo"
	"github.com/smileynet/contactbook/internal/render"
	"github.com/smileynet/contactbook/internal/seed"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// localDir holds project-local config and seed overrides.
const localDir = ".contactbook"

// Globals are flags shared by every command.
type Globals struct {
	Plain    bool   `help:"Force plain text output even if stdout is a TTY."`
	LogLevel string `help:"Diagnostic log level written to stderr (debug, info, warn, error)." placeholder:"LEVEL"`
	Seed     string `help:"Seed file of contacts and notes (default: embedded sample)." placeholder:"PATH"`
}

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Globals

	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Demo      DemoCmd          `cmd:"" default:"1" help:"Run the demonstration sequence (default)."`
	List      ListCmd          `cmd:"" help:"List seeded contacts and notes."`
	Find      FindCmd          `cmd:"" help:"Search seeded contacts and notes."`
	Birthdays BirthdaysCmd     `cmd:"" help:"Show contacts whose birthday is exactly N days from today."`
	Browse    BrowseCmd        `cmd:"" help:"Open the interactive browser TUI."`
}

// loadConfig loads layered config from user and project paths, then applies
// env and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		localDir+"/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.Plain {
		cfg.Display.Plain = true
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Seed != "" {
		cfg.Seed.Path = g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a stderr logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// setup loads config and builds the logger.
func setup(g *Globals) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// loadSeed reads the configured seed file, or the local override of the
// embedded default when no path is set.
func loadSeed(cfg *config.Config) (seed.File, error) {
	if cfg.Seed.Path != "" {
		return seed.LoadPath(cfg.Seed.Path)
	}
	return seed.Load(contactbook.OverlayFS(localDir, contactbook.Defaults), seed.DefaultName)
}

// seededBook returns a book populated from the configured seed.
func seededBook(cfg *config.Config, log *zap.Logger) (*book.Book, error) {
	f, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}
	b := book.New(book.WithLogger(log))
	if err := f.Apply(b); err != nil {
		return nil, err
	}
	log.Debug("seed loaded",
		zap.String("path", cfg.Seed.Path),
		zap.Int("contacts", len(b.Contacts())),
		zap.Int("notes", len(b.Notes())))
	return b, nil
}

// --- Demo command ---

// DemoCmd runs the fixed demonstration sequence on an empty book.
type DemoCmd struct{}

// Run executes the demo command.
func (d *DemoCmd) Run(g *Globals) error {
	cfg, log, err := setup(g)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	defer func() { _ = log.Sync() }()

	out := render.New(render.Options{Writer: os.Stdout, ForcePlain: cfg.Display.Plain})
	return d.run(out, book.New(book.WithLogger(log)))
}

// run executes the demo against the given renderer and book, enabling testable wiring.
func (d *DemoCmd) run(out render.Renderer, b *book.Book) error {
	if err := demo.Run(out, b); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}

// --- List command ---

// ListCmd prints every seeded contact and note.
type ListCmd struct{}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals) error {
	cfg, log, err := setup(g)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer func() { _ = log.Sync() }()

	b, err := seededBook(cfg, log)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	l.run(render.New(render.Options{Writer: os.Stdout, ForcePlain: cfg.Display.Plain}), b)
	return nil
}

func (l *ListCmd) run(out render.Renderer, b *book.Book) {
	out.Section("All Contacts:")
	linesOr(out, b.DisplayContacts(), "No contacts.")
	out.Section("Notes:")
	linesOr(out, b.DisplayNotes(), "No notes.")
}

// --- Find command ---

// FindCmd searches seeded contacts by name and notes by content.
type FindCmd struct {
	Term string `arg:"" help:"Case-insensitive search term."`
}

// Run executes the find command.
func (f *FindCmd) Run(g *Globals) error {
	cfg, log, err := setup(g)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	defer func() { _ = log.Sync() }()

	b, err := seededBook(cfg, log)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	f.run(render.New(render.Options{Writer: os.Stdout, ForcePlain: cfg.Display.Plain}), b)
	return nil
}

func (f *FindCmd) run(out render.Renderer, b *book.Book) {
	out.Section(fmt.Sprintf("Search Results for '%s':", f.Term))
	contacts := b.FindContact(f.Term)
	notes := b.FindNote(f.Term)
	if len(contacts) == 0 && len(notes) == 0 {
		out.Line("No matches.")
		return
	}
	for _, c := range contacts {
		out.Line("Found: " + c.String())
	}
	for _, n := range notes {
		out.Line("Note: " + n.Content)
	}
}

// --- Birthdays command ---

// BirthdaysCmd prints contacts whose birthday falls exactly Days from today.
type BirthdaysCmd struct {
	Days *int `help:"Days ahead of today (default: birthdays.window_days from config)."`
}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run(g *Globals) error {
	cfg, log, err := setup(g)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	defer func() { _ = log.Sync() }()

	b, err := seededBook(cfg, log)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	c.run(render.New(render.Options{Writer: os.Stdout, ForcePlain: cfg.Display.Plain}), b, c.days(cfg))
	return nil
}

// days resolves the window from the flag, falling back to config.
func (c *BirthdaysCmd) days(cfg *config.Config) int {
	if c.Days != nil {
		return *c.Days
	}
	return cfg.Birthdays.WindowDays
}

func (c *BirthdaysCmd) run(out render.Renderer, b *book.Book, days int) {
	out.Section(fmt.Sprintf("Upcoming Birthdays (within %d days):", days))
	demo.Birthdays(out, b.UpcomingBirthdays(days), days)
}

// --- Browse command ---

// BrowseCmd opens the interactive browser over the seeded book.
type BrowseCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the seeded book and launches the browser TUI.
func (c *BrowseCmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("browse: requires a terminal (TTY)")
	}

	cfg, log, err := setup(g)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer func() { _ = log.Sync() }()

	b, err := seededBook(cfg, log)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	m := browse.NewModel(b, browse.WithWindowDays(cfg.Birthdays.WindowDays))
	prog := tea.NewProgram(m, tea.WithAltScreen())
	return c.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (c *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return errors.New("browse: requires a terminal (TTY)")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

func linesOr(out render.Renderer, lines []string, empty string) {
	if len(lines) == 0 {
		out.Line(empty)
		return
	}
	for _, l := range lines {
		out.Line(l)
	}
}

// Exit codes.
const (
	exitSuccess = 0
	exitData    = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ve *contact.ValidationError
	var pe *contact.ParseError
	if errors.As(err, &ve) || errors.As(err, &pe) {
		return exitData
	}
	return exitSetup
}

// run parses args and executes the selected command, writing errors to stderr.
func run(args []string, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("contactbook"),
		kong.Description("Personal contacts and notes manager."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return exitSetup
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return exitSetup
	}
	if err := ctx.Run(&cli.Globals); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return exitCode(err)
	}
	return exitSuccess
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
