package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/fs"
	chathttp "github.com/fwojciec/chatextract/http"
	"github.com/fwojciec/chatextract/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config        chatextract.Config
	DB            *sqlite.DB
	Conversations chatextract.ConversationService
	Fetcher       chatextract.Fetcher
	Batch         *chathttp.Fetcher
	Writer        *fs.Writer
	Asker         chatextract.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Extract ExtractCmd `cmd:"" help:"Extract a conversation from a share URL or saved HTML file"`
	List    ListCmd    `cmd:"" help:"List archived conversations"`
	Show    ShowCmd    `cmd:"" help:"Render an archived conversation"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an archived conversation"`
	Ask     AskCmd     `cmd:"" help:"Ask a question about an archived conversation"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Inputs      []string `arg:"" name:"input" help:"Share URLs or local HTML files"`
	Service     string   `short:"s" help:"Source service (grok, chatgpt, gemini, claude); detected when omitted"`
	Output      string   `short:"o" help:"Output directory (overrides config)"`
	Save        bool     `help:"Archive the conversation in the local database"`
	Styles      string   `help:"Style overrides, e.g. header=h2,mw=60"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit for multiple URLs"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Service string `short:"s" help:"Only show conversations from this service"`
	Limit   int    `short:"n" help:"Maximum number of conversations to show"`
	ByTitle bool   `help:"Sort by title instead of newest first"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Conversation ID"`
	Styles string `help:"Style overrides, e.g. header=h2,mw=60"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Conversation ID"`
	Force bool   `help:"Confirm deletion"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	ID       string `arg:"" help:"Conversation ID"`
	Question string `arg:"" help:"Question to ask about the conversation"`
}
