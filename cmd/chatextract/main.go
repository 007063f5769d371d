package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/fs"
	"github.com/fwojciec/chatextract/gemini"
	chathttp "github.com/fwojciec/chatextract/http"
	chatslog "github.com/fwojciec/chatextract/slog"
	"github.com/fwojciec/chatextract/sqlite"
	"github.com/fwojciec/chatextract/yaml"
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
	// Database and config paths. Set before calling Run().
	DBPath     string
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	ConversationService chatextract.ConversationService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
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
		Writer: fs.NewWriter(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatextract"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'chatextract --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := yaml.Load(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Fix or delete %s to regenerate defaults\n", m.ConfigPath)
		return fmt.Errorf("failed to load config at %q: %w", m.ConfigPath, err)
	}
	deps.Config = cfg

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CHATEXTRACT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ConversationService = sqlite.NewConversationService(m.DB)
	deps.DB = m.DB
	deps.Conversations = chatslog.NewLoggingConversationService(m.ConversationService, deps.Logger)

	if cmd == "extract" {
		timeout := time.Duration(cfg.Extraction.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = chathttp.DefaultFetchTimeout
		}
		fetcher := chathttp.NewFetcher(
			chathttp.WithTimeout(timeout),
			chathttp.WithRateLimit(1.0),
		)
		deps.Batch = fetcher
		deps.Fetcher = chatslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	if cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Asker = gemini.NewAsker(client, deps.Conversations)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("CHATEXTRACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "chatextract.db"
	}
	dir := filepath.Join(home, ".chatextract")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "chatextract.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("CHATEXTRACT_CONFIG"); path != "" {
		return path
	}
	path, err := yaml.DefaultPath()
	if err != nil {
		return "config.yaml"
	}
	return path
}
