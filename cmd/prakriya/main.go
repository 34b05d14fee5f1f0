// Command prakriya looks up the derivation of Sanskrit verb forms and
// generates forms from roots.
//
//	prakriya [flags] lookup VERBFORM [FIELD]
//	prakriya [flags] generate [-suffix S] VERB [LAKARA [PURUSHA VACHANA]]
//	prakriya [flags] tree VERB
//	prakriya [flags] info VERB
//	prakriya [flags] find FORM
//	prakriya [flags] schemes | fields
//	prakriya [flags] decompress
//	prakriya [flags] preload [SHARD...]
//	prakriya [flags] import-forms [-db PATH]
//
// Results are printed as JSON on stdout. Errors go to stderr and set a
// distinct exit status per error kind.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/drdhaval2785/prakriya/internal/app"
	"github.com/drdhaval2785/prakriya/internal/config"
	"github.com/drdhaval2785/prakriya/pkg/formdb"
	"github.com/drdhaval2785/prakriya/pkg/prakriya"
	"github.com/drdhaval2785/prakriya/pkg/translit"
)

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("prakriya", flag.ContinueOnError)
	fs.SetOutput(stderr)
	intran := fs.String("intran", "", "input scheme (default from config, slp1)")
	outtran := fs.String("outtran", "", "output scheme (default from config, slp1)")
	dataDir := fs.String("data", "", "dataset directory (overrides config)")
	offline := fs.Bool("offline", false, "never download the dataset")
	backend := fs.String("backend", "", "generated forms backend: json or sqlite")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: prakriya [flags] lookup|generate|tree|info|find|schemes|fields|decompress|preload|import-forms ...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return app.ExitOK
		}
		return app.ExitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return app.ExitUsage
	}

	// flags override the file and env, so validation waits until they apply
	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return app.ExitUsage
	}
	if *intran != "" {
		cfg.Translit.Input = *intran
	}
	if *outtran != "" {
		cfg.Translit.Output = *outtran
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *offline {
		cfg.Data.Offline = true
	}
	if *backend != "" {
		cfg.Forms.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "config:", err)
		if code := app.ExitCode(err); code == app.ExitScript {
			return code
		}
		return app.ExitUsage
	}
	app.NewLogger(cfg.Log)

	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}
	err = c.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
	switch {
	case err == nil:
		return app.ExitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return app.ExitUsage
	default:
		fmt.Fprintln(stderr, "error:", err)
		return app.ExitCode(err)
	}
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "lookup":
		return c.lookup(ctx, args)
	case "generate":
		return c.generate(ctx, args)
	case "tree":
		return c.tree(ctx, args)
	case "info":
		return c.info(ctx, args)
	case "find":
		return c.find(ctx, args)
	case "schemes":
		return c.print(translit.Names())
	case "fields":
		return c.print(prakriya.Fields())
	case "decompress":
		return c.decompress(ctx)
	case "preload":
		return c.preload(ctx, args)
	case "import-forms":
		return c.importForms(ctx, args)
	default:
		return usageErr("unknown command %q", cmd)
	}
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) session(ctx context.Context) (*app.Session, error) {
	return app.Open(ctx, c.cfg, nil)
}

func (c *cli) lookup(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageErr("lookup VERBFORM [FIELD]")
	}
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	field := ""
	if len(args) == 2 {
		field = args[1]
	}
	res, err := s.Prakriya.LookupField(ctx, args[0], field)
	if err != nil {
		return err
	}
	return c.print(res)
}

func (c *cli) generate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	suffix := fs.String("suffix", "", "suffix filter; wins over purusha and vachana")
	if err := fs.Parse(args); err != nil {
		return usageErr("%v", err)
	}
	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 4 {
		return usageErr("generate [-suffix S] VERB [LAKARA [PURUSHA VACHANA]]")
	}
	q := prakriya.GenerateQuery{Root: rest[0], Suffix: *suffix}
	if len(rest) > 1 {
		q.Lakara = rest[1]
	}
	if len(rest) > 2 {
		q.Purusha = rest[2]
	}
	if len(rest) > 3 {
		q.Vachana = rest[3]
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	res, err := s.Prakriya.Generate(ctx, q)
	if err != nil {
		return err
	}
	return c.print(res)
}

func (c *cli) tree(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("tree VERB")
	}
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	res, err := s.Prakriya.FormTree(ctx, args[0])
	if err != nil {
		return err
	}
	return c.print(res)
}

func (c *cli) info(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("info VERB")
	}
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	res, err := s.Prakriya.RootInfo(ctx, args[0])
	if err != nil {
		return err
	}
	return c.print(res)
}

// find answers reverse queries from the sqlite forms table.
func (c *cli) find(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("find FORM")
	}
	in, _ := translit.ParseScheme(c.cfg.Translit.Input)
	form, err := translit.ToCanonical(args[0], in)
	if err != nil {
		return err
	}
	fdb, err := formdb.Open(ctx, c.formsPath())
	if err != nil {
		return err
	}
	defer fdb.Close()
	refs, err := fdb.FindForm(ctx, form)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("%w: %q", prakriya.ErrUnknownForm, args[0])
	}
	return c.print(refs)
}

func (c *cli) formsPath() string {
	if c.cfg.Forms.SQLitePath != "" {
		return c.cfg.Forms.SQLitePath
	}
	return filepath.Join(c.cfg.Data.Dir, "forms.db")
}

func (c *cli) decompress(ctx context.Context) error {
	store, err := app.NewStore(c.cfg, nil)
	if err != nil {
		return err
	}
	n, err := store.Decompress(ctx)
	if err != nil {
		return err
	}
	return c.print(map[string]any{"dir": store.Dir(), "files": n})
}

func (c *cli) preload(ctx context.Context, ids []string) error {
	store, err := app.NewStore(c.cfg, nil)
	if err != nil {
		return err
	}
	start := time.Now()
	n, err := store.Preload(ctx, ids...)
	if err != nil {
		return err
	}
	return c.print(map[string]any{"shards": n, "elapsed": time.Since(start).String()})
}

func (c *cli) importForms(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import-forms", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	dbPath := fs.String("db", c.formsPath(), "SQLite database to write")
	batch := fs.Int("batch", 0, "roots per transaction")
	if err := fs.Parse(args); err != nil {
		return usageErr("%v", err)
	}
	if fs.NArg() != 0 {
		return usageErr("import-forms [-db PATH] [-batch N]")
	}

	store, err := app.NewStore(c.cfg, nil)
	if err != nil {
		return err
	}
	fdb, err := formdb.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer fdb.Close()
	stats, err := formdb.Import(ctx, fdb.DB(), store, formdb.ImportOptions{BatchSize: *batch})
	if err != nil {
		return err
	}
	return c.print(stats)
}
