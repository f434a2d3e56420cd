package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/crawl"
)

// Dependencies holds all services and configuration for command execution.
// Only the services a command needs are wired.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *Config

	Fetcher    pressdoc.Fetcher
	Downloader pressdoc.Downloader
	Articles   pressdoc.ArticleParser
	Tables     pressdoc.TableNormalizer
	Extractor  pressdoc.Extractor
	Converter  pressdoc.Converter
	Formatter  pressdoc.ArticleFormatter
	Crawler    *crawl.Crawler

	Store     pressdoc.ArticleService
	Objects   pressdoc.ObjectStore
	Documents pressdoc.DocumentParser
	Exporter  pressdoc.DocumentExporter
	Narrator  pressdoc.TableNarrator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" type:"path" help:"Config file (default: $XDG_CONFIG_HOME/pressdoc/config.yaml)"`
	Verbose bool   `short:"v" help:"Log at debug level"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl the press board into a JSON file"`
	Article  ArticleCmd  `cmd:"" help:"Parse a single article page"`
	Table    TableCmd    `cmd:"" help:"Normalize an HTML table with merged cells"`
	Preview  PreviewCmd  `cmd:"" help:"Show the main content of a page as markdown"`
	Markdown MarkdownCmd `cmd:"" help:"Write crawled articles as markdown files"`
	Load     LoadCmd     `cmd:"" help:"Import crawled articles into the database"`
	List     ListCmd     `cmd:"" help:"List stored articles"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored article"`
	Hwp      HwpCmd      `cmd:"" help:"Extract press information from HWP files"`
	Export   ExportCmd   `cmd:"" help:"Export crawled articles to an Excel file"`
	Upload   UploadCmd   `cmd:"" help:"Upload files to object storage"`
	Narrate  NarrateCmd  `cmd:"" help:"Describe article tables as sentences"`
}

// CrawlCmd is the "crawl" subcommand. Zero values fall back to the config.
type CrawlCmd struct {
	StartPage   int    `short:"s" help:"First list page; starting past page 1 resumes the existing output"`
	MaxPages    int    `short:"m" help:"Last list page (0 crawls until a page is empty)"`
	Output      string `short:"o" type:"path" help:"Output JSON file"`
	Concurrency int    `short:"c" help:"Concurrent article fetches"`
	Sitemap     bool   `help:"Discover articles from sitemaps instead of the list pages"`
	Browser     string `help:"Render pages in headless Chrome: off, on or auto"`
}

// ArticleCmd is the "article" subcommand.
type ArticleCmd struct {
	Source string `arg:"" help:"Article URL or saved HTML file"`
	URL    string `help:"Page URL of a saved file, used to resolve attachment links"`
	Format string `short:"f" enum:"json,markdown,text" default:"json" help:"Output format (json, markdown, text)"`
}

// TableCmd is the "table" subcommand.
type TableCmd struct {
	File   string `arg:"" help:"HTML file containing a table, or - for stdin"`
	Format string `short:"f" enum:"text,markdown,json" default:"text" help:"Output format (text, markdown, json)"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL string `arg:"" help:"Page URL"`
	Raw bool   `help:"Convert the whole page instead of its main content"`
}

// MarkdownCmd is the "markdown" subcommand.
type MarkdownCmd struct {
	Input string `arg:"" type:"existingfile" help:"Crawl output JSON file"`
	Dir   string `arg:"" optional:"" default:"." type:"path" help:"Base directory for the markdown files"`
}

// LoadCmd is the "load" subcommand.
type LoadCmd struct {
	Input string `arg:"" type:"existingfile" help:"Crawl output JSON file"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `short:"n" default:"20" help:"Maximum number of articles"`
	Offset int `help:"Number of articles to skip"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Article ID"`
}

// HwpCmd is the "hwp" subcommand.
type HwpCmd struct {
	Dir      string `arg:"" type:"path" help:"Directory of HWP files"`
	Download string `type:"existingfile" help:"Download the HWP attachments listed in this crawl output into DIR first"`
	Xlsx     string `type:"path" help:"Write the document list to this Excel file"`
	JSON     string `name:"json" type:"path" help:"Write the extracted press information to this JSON file"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Input string `arg:"" type:"existingfile" help:"Crawl output JSON file"`
	Xlsx  string `arg:"" type:"path" help:"Excel file to write"`
}

// UploadCmd is the "upload" subcommand.
type UploadCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Files to upload"`
}

// NarrateCmd is the "narrate" subcommand.
type NarrateCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Crawl output or single article JSON file"`
	Format string `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`
}
