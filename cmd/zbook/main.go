package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/zarlcorp/core/pkg/zapp"

	"github.com/zarlcorp/zbook/internal/book"
	"github.com/zarlcorp/zbook/internal/cli"
	"github.com/zarlcorp/zbook/internal/config"
	"github.com/zarlcorp/zbook/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	DataDir string `help:"Directory holding the address book." type:"path" placeholder:"DIR"`
	Config  string `help:"Config file." type:"path" placeholder:"FILE"`

	out io.Writer `kong:"-"`
}

func (g *Globals) stdout() io.Writer {
	if g.out != nil {
		return g.out
	}
	return os.Stdout
}

// loadConfig reads the config file, applies env overrides and validates.
func (g *Globals) loadConfig() (*config.Config, error) {
	path := g.Config
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Globals) opener() (cli.Opener, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return cli.Opener{}, err
	}
	dir := g.DataDir
	if dir == "" {
		dir = cli.DataDir()
	}
	return cli.Opener{Dir: dir, Config: cfg}, nil
}

// withBook opens the book, runs fn and releases the storage.
func (g *Globals) withBook(fn func(w io.Writer, b *book.Book, cfg *config.Config) error) error {
	o, err := g.opener()
	if err != nil {
		return err
	}
	b, closeFn, err := cli.OpenPrompt(o, os.Stderr)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(g.stdout(), b, o.Config)
}

// CLI is the top-level command structure for zbook.
type CLI struct {
	Globals

	ShowVersion kong.VersionFlag `name:"version" help:"Show version." short:"V"`

	Menu      MenuCmd      `cmd:"" default:"1" help:"Open the interactive menu."`
	Add       AddCmd       `cmd:"" help:"Add a contact, replacing one with the same name."`
	Find      FindCmd      `cmd:"" help:"Find contacts by name fragment or phone digits."`
	Delete    DeleteCmd    `cmd:"" help:"Delete a contact by exact name."`
	List      ListCmd      `cmd:"" help:"List every contact in chunks."`
	Phone     PhoneCmd     `cmd:"" help:"Manage a contact's phone numbers."`
	Birthday  BirthdayCmd  `cmd:"" help:"Set or clear a contact's birthday."`
	Birthdays BirthdaysCmd `cmd:"" help:"Show upcoming birthdays."`
	Version   VersionCmd   `cmd:"" help:"Print the version."`
}

// MenuCmd runs the interactive menu.
type MenuCmd struct{}

func (c *MenuCmd) Run(g *Globals, ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("menu: requires a terminal (TTY); use a subcommand instead")
	}

	o, err := g.opener()
	if err != nil {
		return err
	}

	m := tui.New(version, o.Open, tui.Options{
		Encrypted:      o.Encrypted(),
		FirstRun:       o.FirstRun(),
		ChunkSize:      o.Config.Display.ChunkSize,
		BirthdayWindow: o.Config.Display.BirthdayWindow,
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(tui.Model); ok {
		if cerr := fm.Close(); cerr != nil {
			slog.Error("close", "err", cerr)
		}
	}
	return err
}

// AddCmd stores a contact.
type AddCmd struct {
	Name     string   `arg:"" help:"Contact name."`
	Phone    []string `short:"p" help:"Ten-digit phone number. Repeatable."`
	Birthday string   `short:"b" help:"Birthday as YYYY-MM-DD." placeholder:"DATE"`
}

func (c *AddCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.Add(w, b, c.Name, c.Phone, c.Birthday)
	})
}

// FindCmd searches the book.
type FindCmd struct {
	Term string `arg:"" help:"Name fragment or phone digits."`
	JSON bool   `name:"json" help:"Print matches as JSON."`
}

func (c *FindCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.Find(w, b, c.Term, c.JSON)
	})
}

// DeleteCmd removes a contact.
type DeleteCmd struct {
	Name string `arg:"" help:"Exact contact name."`
}

func (c *DeleteCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.Delete(w, b, c.Name)
	})
}

// ListCmd prints the book.
type ListCmd struct {
	Chunk int  `help:"Contacts per chunk. Defaults to display.chunk_size." placeholder:"N"`
	JSON  bool `name:"json" help:"Print the book as JSON."`
}

func (c *ListCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, cfg *config.Config) error {
		size := cfg.Display.ChunkSize
		if c.Chunk != 0 {
			size = c.Chunk
		}
		return cli.List(w, b, size, c.JSON)
	})
}

// PhoneCmd groups phone edits.
type PhoneCmd struct {
	Add    PhoneAddCmd    `cmd:"" help:"Add a phone to a contact."`
	Remove PhoneRemoveCmd `cmd:"" help:"Remove a phone from a contact."`
	Edit   PhoneEditCmd   `cmd:"" help:"Replace one of a contact's phones."`
}

type PhoneAddCmd struct {
	Name  string `arg:"" help:"Exact contact name."`
	Phone string `arg:"" help:"Ten-digit phone number."`
}

func (c *PhoneAddCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.AddPhone(w, b, c.Name, c.Phone)
	})
}

type PhoneRemoveCmd struct {
	Name  string `arg:"" help:"Exact contact name."`
	Phone string `arg:"" help:"Phone number to remove."`
}

func (c *PhoneRemoveCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.RemovePhone(w, b, c.Name, c.Phone)
	})
}

type PhoneEditCmd struct {
	Name string `arg:"" help:"Exact contact name."`
	Old  string `arg:"" help:"Current phone number."`
	New  string `arg:"" help:"Replacement phone number."`
}

func (c *PhoneEditCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.EditPhone(w, b, c.Name, c.Old, c.New)
	})
}

// BirthdayCmd groups birthday edits.
type BirthdayCmd struct {
	Set   BirthdaySetCmd   `cmd:"" help:"Set a contact's birthday."`
	Clear BirthdayClearCmd `cmd:"" help:"Remove a contact's birthday."`
}

type BirthdaySetCmd struct {
	Name string `arg:"" help:"Exact contact name."`
	Date string `arg:"" help:"Birthday as YYYY-MM-DD."`
}

func (c *BirthdaySetCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.SetBirthday(w, b, c.Name, c.Date)
	})
}

type BirthdayClearCmd struct {
	Name string `arg:"" help:"Exact contact name."`
}

func (c *BirthdayClearCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, _ *config.Config) error {
		return cli.SetBirthday(w, b, c.Name, "")
	})
}

// BirthdaysCmd lists birthdays coming up.
type BirthdaysCmd struct {
	Within int `help:"Days ahead to look. Defaults to display.birthday_window." default:"-1" placeholder:"DAYS"`
}

func (c *BirthdaysCmd) Run(g *Globals) error {
	return g.withBook(func(w io.Writer, b *book.Book, cfg *config.Config) error {
		window := cfg.Display.BirthdayWindow
		if c.Within >= 0 {
			window = c.Within
		}
		return cli.Birthdays(w, b, time.Now(), window)
	})
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.stdout(), "zbook %s\n", version)
	return nil
}

func newParser(c *CLI, ctx context.Context, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("zbook"),
		kong.Description("A contact book with validated phones and birthday reminders."),
		kong.Vars{"version": version},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError(),
	}, options...)
	return kong.New(c, options...)
}

func main() {
	app := zapp.New(zapp.WithName("zbook"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	var c CLI
	parser, err := newParser(&c, ctx)
	if err != nil {
		slog.Error("cli", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := kctx.Run(&c.Globals); err != nil {
		slog.Error(kctx.Command(), "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}
