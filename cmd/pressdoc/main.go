package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/crawl"
	"github.com/fwojciec/pressdoc/excelize"
	"github.com/fwojciec/pressdoc/fs"
	"github.com/fwojciec/pressdoc/gemini"
	"github.com/fwojciec/pressdoc/goquery"
	"github.com/fwojciec/pressdoc/htmltomarkdown"
	pressdochttp "github.com/fwojciec/pressdoc/http"
	"github.com/fwojciec/pressdoc/markdown"
	"github.com/fwojciec/pressdoc/minio"
	"github.com/fwojciec/pressdoc/postgres"
	"github.com/fwojciec/pressdoc/readability"
	"github.com/fwojciec/pressdoc/rod"
	pdslog "github.com/fwojciec/pressdoc/slog"
	"github.com/fwojciec/pressdoc/sqlite"
	"github.com/fwojciec/pressdoc/trafilatura"
	"github.com/jmoiron/sqlx"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath is used when no --config flag is given. Set before
	// calling Run().
	ConfigPath string

	Stdin io.Reader

	// Databases opened by Run.
	DB *sqlite.DB
	PG *sqlx.DB

	// Services for end-to-end testing. When set they replace the
	// configured backends.
	Store     pressdoc.ArticleService
	Fetcher   pressdoc.Fetcher
	Objects   pressdoc.ObjectStore
	Documents pressdoc.DocumentParser
	Narrator  pressdoc.TableNarrator

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: DefaultConfigPath(),
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	if m.PG != nil {
		errs = append(errs, m.PG.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pressdoc"),
		kong.Description("Crawl, parse and store press releases"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pressdoc --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	configPath := cli.Config
	if configPath == "" {
		configPath = m.ConfigPath
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cli.Verbose {
		cfg.Logging.Level = "debug"
	}
	logger, logCloser, err := NewLogger(cfg.Logging, stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	deps.Config = cfg
	deps.Logger = logger

	defer m.Close()
	if err := m.wire(ctx, cmd, cli, deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the services the command needs.
func (m *Main) wire(ctx context.Context, cmd string, cli *CLI, deps *Dependencies) error {
	cfg, logger := deps.Config, deps.Logger

	switch cmd {
	case "crawl":
		mode := cli.Crawl.Browser
		if mode == "" {
			mode = cfg.Crawler.Browser
		}
		fetcher, err := m.pageFetcher(ctx, cfg, mode, deps.Stderr)
		if err != nil {
			return err
		}
		articles, err := newArticleParser(cfg)
		if err != nil {
			return err
		}

		output := cli.Crawl.Output
		if output == "" {
			output = cfg.Crawler.Output
		}
		concurrency := cli.Crawl.Concurrency
		if concurrency <= 0 {
			concurrency = cfg.Crawler.Concurrency
		}

		crawler := &crawl.Crawler{
			Fetcher:     pdslog.NewLoggingFetcher(fetcher, logger),
			Listings:    goquery.NewListingParser(),
			Articles:    articles,
			Output:      fs.NewOutputStore(output),
			Sitemaps:    pdslog.NewLoggingSitemapService(pressdochttp.NewSitemapService(nil), logger),
			Concurrency: concurrency,
		}
		if cfg.Crawler.Delay > 0 {
			crawler.RateLimiter = crawl.NewIntervalLimiter(cfg.Crawler.Delay)
		}
		deps.Crawler = crawler

	case "article":
		articles, err := newArticleParser(cfg)
		if err != nil {
			return err
		}
		deps.Articles = articles
		deps.Formatter = markdown.NewFormatter()
		if isURL(cli.Article.Source) {
			deps.Fetcher = pdslog.NewLoggingFetcher(m.httpFetcher(cfg), logger)
		}

	case "table":
		deps.Tables = goquery.NewTableNormalizer()

	case "preview":
		deps.Fetcher = pdslog.NewLoggingFetcher(m.httpFetcher(cfg), logger)
		deps.Extractor = extractorChain{trafilatura.NewExtractor(), readability.NewExtractor()}
		var opts []htmltomarkdown.Option
		if u, err := url.Parse(cli.Preview.URL); err == nil && u.Host != "" {
			opts = append(opts, htmltomarkdown.WithDomain(u.Scheme+"://"+u.Host))
		}
		deps.Converter = htmltomarkdown.NewConverter(opts...)

	case "markdown":
		deps.Formatter = markdown.NewFormatter()

	case "load", "list", "delete":
		store, err := m.articleService(ctx, cfg, deps.Stderr)
		if err != nil {
			return err
		}
		deps.Store = pdslog.NewLoggingArticleService(store, logger)

	case "hwp":
		documents := m.Documents
		if documents == nil {
			documents = pressdochttp.NewDocumentParser(cfg.Parser.BaseURL,
				pressdochttp.WithPollInterval(cfg.Parser.PollInterval))
		}
		deps.Documents = pdslog.NewLoggingDocumentParser(documents, logger)
		deps.Exporter = excelize.NewExporter()
		deps.Downloader = pressdochttp.NewFetcher(
			pressdochttp.WithTimeout(cfg.Crawler.Timeout),
			pressdochttp.WithUserAgent(userAgent(cfg)),
		)

	case "export":
		deps.Exporter = excelize.NewExporter()

	case "upload":
		objects := m.Objects
		if objects == nil {
			store, err := minio.NewObjectStore(cfg.ObjectStoreConfig())
			if err != nil {
				return fmt.Errorf("failed to connect to object storage: %w", err)
			}
			objects = store
		}
		deps.Objects = pdslog.NewLoggingObjectStore(objects, logger)

	case "narrate":
		narrator := m.Narrator
		if narrator == nil {
			if cfg.Gemini.APIKey == "" {
				fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set")
			}
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  cfg.Gemini.APIKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			narrator = gemini.NewTableNarrator(client, cfg.Gemini.Model)
		}
		deps.Narrator = pdslog.NewLoggingTableNarrator(narrator, logger)
	}
	return nil
}

func newArticleParser(cfg *Config) (*goquery.ArticleParser, error) {
	opts, err := cfg.Body.ClassifierOptions()
	if err != nil {
		return nil, err
	}
	parser := goquery.NewArticleParser(goquery.NewClassifier(opts...))
	parser.Extractor = extractorChain{trafilatura.NewExtractor(), readability.NewExtractor()}
	return parser, nil
}

func userAgent(cfg *Config) string {
	if cfg.Crawler.UserAgent != "" {
		return cfg.Crawler.UserAgent
	}
	return pressdochttp.DefaultUserAgent
}

func (m *Main) httpFetcher(cfg *Config) pressdoc.Fetcher {
	if m.Fetcher != nil {
		return m.Fetcher
	}
	return pressdochttp.NewFetcher(
		pressdochttp.WithTimeout(cfg.Crawler.Timeout),
		pressdochttp.WithUserAgent(userAgent(cfg)),
	)
}

// pageFetcher returns the fetcher for the browser mode. In auto mode the
// first list page is fetched both ways and the browser is kept only when
// it sees more articles.
func (m *Main) pageFetcher(ctx context.Context, cfg *Config, mode string, stderr io.Writer) (pressdoc.Fetcher, error) {
	plain := m.httpFetcher(cfg)
	switch mode {
	case BrowserOff:
		return plain, nil
	case BrowserOn, BrowserAuto:
	default:
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "unknown browser mode %q", mode)
	}

	browser, err := rod.NewFetcher(
		rod.WithFetchTimeout(cfg.Crawler.Timeout),
		rod.WithReadySelector(cfg.Crawler.ReadySelector),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	if mode == BrowserOn {
		m.closers = append(m.closers, browser)
		return browser, nil
	}

	board := cfg.Crawler.Board
	listURL := board.PageURL(1)
	plainHTML, err := plain.Fetch(ctx, listURL)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("fetching %s: %w", listURL, err)
	}
	browserHTML, err := browser.Fetch(ctx, listURL)
	if err != nil || !crawl.NeedsBrowser(plainHTML, browserHTML, board, goquery.NewListingParser()) {
		browser.Close()
		return plain, nil
	}
	fmt.Fprintln(stderr, "List page needs JavaScript; rendering pages in the browser")
	m.closers = append(m.closers, browser)
	return browser, nil
}

// articleService opens the configured database.
func (m *Main) articleService(ctx context.Context, cfg *Config, stderr io.Writer) (pressdoc.ArticleService, error) {
	if m.Store != nil {
		return m.Store, nil
	}

	switch cfg.Database.Driver {
	case DriverPostgres:
		db, err := postgres.Open(ctx, cfg.PostgresConfig())
		if err != nil {
			return nil, err
		}
		m.PG = db
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return postgres.NewArticleService(db), nil

	default:
		path := cfg.Database.Path
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", EnvDB)
				return nil, fmt.Errorf("failed to create database directory %q: %w", dir, err)
			}
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", EnvDB)
			return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		return sqlite.NewArticleService(m.DB), nil
	}
}

var _ pressdoc.Extractor = extractorChain(nil)

// extractorChain returns the first successful extraction with content.
type extractorChain []pressdoc.Extractor

func (c extractorChain) Extract(html string) (*pressdoc.ExtractResult, error) {
	var lastErr error
	for _, e := range c {
		result, err := e.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if result != nil && strings.TrimSpace(result.ContentHTML) != "" {
			return result, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return &pressdoc.ExtractResult{}, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
