package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/extract"
	"github.com/fwojciec/chatextract/goquery"
	"github.com/fwojciec/chatextract/htmltomarkdown"
	"github.com/fwojciec/chatextract/jsonscan"
	"github.com/fwojciec/chatextract/norm"
	"github.com/fwojciec/chatextract/readability"
	chatslog "github.com/fwojciec/chatextract/slog"
	"github.com/fwojciec/chatextract/textscan"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	service := chatextract.ServiceUnknown
	if c.Service != "" {
		parsed, err := chatextract.ParseService(c.Service)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
			return err
		}
		service = parsed
	}

	cfg := deps.Config
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}
	if c.Styles != "" {
		styles, err := cfg.Styles.ApplyOverrides(c.Styles)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
			return err
		}
		cfg.Styles = styles
	}

	docs, err := c.loadDocuments(deps)
	if err != nil {
		return err
	}

	orchestrator := extract.NewOrchestrator(service, c.strategies(deps, service)...)

	var firstErr error
	for _, doc := range docs {
		conv, report, err := orchestrator.Extract(doc)
		if err != nil {
			renderReport(deps.Stderr, doc.Source, report)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		path, err := deps.Writer.WriteConversation(conv, cfg)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(deps.Stdout, "Extracted %d messages from %s (%s, confidence %.2f)\n",
			len(conv.Messages), doc.Source, conv.Method, conv.Confidence)
		fmt.Fprintf(deps.Stdout, "  Saved to %s\n", path)

		if c.Save {
			if err := deps.Conversations.CreateConversation(deps.Ctx, conv); err != nil {
				if chatextract.ErrorCode(err) == chatextract.ECONFLICT {
					fmt.Fprintf(deps.Stdout, "  Already archived: %s\n", chatextract.ErrorMessage(err))
					continue
				}
				fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			fmt.Fprintf(deps.Stdout, "  Archived as %s\n", conv.ID)
		}
	}

	return firstErr
}

// strategies builds the extraction pipeline: embedded JSON, then DOM
// heuristics with markdown rendering, then readability text fallback.
// Each strategy is wrapped with debug logging.
func (c *ExtractCmd) strategies(deps *Dependencies, service chatextract.Service) []chatextract.Strategy {
	minLength := deps.Config.Extraction.MinMessageLength
	strategies := []chatextract.Strategy{
		&jsonscan.Strategy{Service: service, MinLength: minLength},
		&goquery.Strategy{Service: service, MinLength: minLength, Converter: htmltomarkdown.NewConverter()},
		&textscan.Strategy{Source: readability.NewSource(), MinLength: minLength},
	}
	for i := range strategies {
		strategies[i] = chatslog.NewLoggingStrategy(strategies[i], deps.Logger)
	}
	return strategies
}

// loadDocuments turns the command inputs into documents: local files
// are read from disk, URLs are fetched (concurrently when there are
// several).
func (c *ExtractCmd) loadDocuments(deps *Dependencies) ([]*chatextract.Document, error) {
	var docs []*chatextract.Document
	var urls []string
	for _, input := range c.Inputs {
		if isURL(input) {
			urls = append(urls, input)
			continue
		}
		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot read %s: %v\n", input, err)
			return nil, err
		}
		docs = append(docs, &chatextract.Document{
			Source: "file:" + input,
			HTML:   norm.Bytes(data),
		})
	}

	switch {
	case len(urls) == 1:
		html, err := deps.Fetcher.Fetch(deps.Ctx, urls[0])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
			fmt.Fprintln(deps.Stderr, "Hint: If the page loads in your browser, save it there and extract the file instead")
			return nil, err
		}
		docs = append(docs, &chatextract.Document{URL: urls[0], Source: urls[0], HTML: html})
	case len(urls) > 1:
		for _, result := range deps.Batch.FetchAll(deps.Ctx, urls, c.Concurrency) {
			if result.Err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", result.URL, chatextract.ErrorMessage(result.Err))
				continue
			}
			docs = append(docs, &chatextract.Document{URL: result.URL, Source: result.URL, HTML: result.HTML})
		}
	}

	if len(docs) == 0 {
		err := chatextract.Errorf(chatextract.EINVALID, "no readable inputs")
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
		return nil, err
	}
	return docs, nil
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// renderReport prints what each strategy tried so a failed extraction
// is diagnosable from the terminal.
func renderReport(w io.Writer, source string, report *chatextract.Report) {
	fmt.Fprintf(w, "No conversation found in %s\n", source)
	if report == nil || len(report.Attempts) == 0 {
		return
	}
	for _, a := range report.Attempts {
		detail := fmt.Sprintf("%d messages", a.Messages)
		if a.Err != "" {
			detail = a.Err
		}
		fmt.Fprintf(w, "  %-4s  confidence %.2f  %s\n", a.Strategy, a.Confidence, detail)
	}
	if report.Successes() == 0 {
		fmt.Fprintln(w, "Hint: The conversation may be rendered with JavaScript. Save the fully loaded page from your browser and extract the file instead")
	}
}
