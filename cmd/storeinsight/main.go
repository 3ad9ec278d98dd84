package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/storeinsight"
	"github.com/fwojciec/storeinsight/competitor"
	"github.com/fwojciec/storeinsight/extract"
	"github.com/fwojciec/storeinsight/fs"
	"github.com/fwojciec/storeinsight/gemini"
	"github.com/fwojciec/storeinsight/goquery"
	"github.com/fwojciec/storeinsight/htmltomarkdown"
	sihttp "github.com/fwojciec/storeinsight/http"
	"github.com/fwojciec/storeinsight/readability"
	"github.com/fwojciec/storeinsight/shopify"
	sislog "github.com/fwojciec/storeinsight/slog"
	"github.com/fwojciec/storeinsight/sqlite"
	"github.com/fwojciec/storeinsight/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService storeinsight.ExtractionRecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("storeinsight"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'storeinsight --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STOREINSIGHT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RecordService = sqlite.NewExtractionRecordService(m.DB)
	deps.DB = m.DB
	deps.Records = m.RecordService
	deps.Reports = fs.NewReportWriter()

	// Wire the extraction pipeline only for commands that reach the network.
	if cmd == "extract" || cmd == "competitors" {
		logger := newLogger(stderr)

		var synthesizer storeinsight.Synthesizer
		var discoverer storeinsight.Discoverer = competitor.NewStaticDiscoverer()

		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			synthesizer = gemini.NewSynthesizer(client)
			discoverer = gemini.NewDiscoverer(client)
		} else if cmd == "competitors" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY not set; using the built-in competitor catalog. Get an API key at https://aistudio.google.com/apikey for discovery.")
		}

		var fetcher storeinsight.Fetcher = sihttp.NewFetcher()
		fetcher = sislog.NewLoggingFetcher(fetcher, logger)
		fetcher = extract.NewRateLimitedFetcher(fetcher, extract.NewDomainLimiter(1.0))

		text := &extract.FallbackTextExtractor{
			Primary:   trafilatura.NewExtractor(),
			Secondary: readability.NewExtractor(),
		}

		orchestrator := &extract.Orchestrator{
			Fetcher:     fetcher,
			Detector:    shopify.NewDetector(),
			Catalog:     shopify.NewCatalogService(fetcher),
			Policies:    goquery.NewPolicyService(fetcher, text),
			FAQs:        goquery.NewFAQService(fetcher, goquery.WithAnswerMarkdown(htmltomarkdown.NewConverter())),
			Social:      goquery.NewSocialExtractor(),
			Contact:     goquery.NewContactService(fetcher),
			Links:       goquery.NewLinkExtractor(),
			Brand:       goquery.NewBrandExtractor(),
			Text:        text,
			Records:     m.RecordService,
			Synthesizer: synthesizer,
			Pages:       sihttp.NewSitemapDiscoverer(fetcher),
			Cache:       extract.NewCache(extract.DefaultCacheTTL),
			Logger:      logger,
		}

		deps.Insights = sislog.NewLoggingInsightService(orchestrator, logger)
		deps.Analyzer = &competitor.Analyzer{
			Discoverer:  discoverer,
			Insights:    deps.Insights,
			Synthesizer: synthesizer,
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

// newLogger returns a structured logger writing to stderr. Fetch-level
// detail is only emitted when STOREINSIGHT_DEBUG is set.
func newLogger(stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("STOREINSIGHT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("STOREINSIGHT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "storeinsight.db"
	}
	dir := filepath.Join(home, ".storeinsight")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "storeinsight.db")
}
