// Package fs writes rendered conversations to the local filesystem.
package fs

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/chatextract"
)

// Writer saves rendered conversations as markdown files.
type Writer struct{}

// NewWriter returns a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteConversation renders conv per cfg and writes it under
// cfg.OutputDir, creating the directory if needed. It returns the path
// of the written file.
func (w *Writer) WriteConversation(conv *chatextract.Conversation, cfg chatextract.Config) (string, error) {
	if conv == nil {
		return "", chatextract.Errorf(chatextract.EINVALID, "conversation required")
	}
	dir, err := ExpandPath(cfg.OutputDir)
	if err != nil {
		return "", err
	}
	name := Filename(cfg.FilenameTemplate, conv)
	content := chatextract.FormatConversation(conv, cfg)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", chatextract.Errorf(chatextract.EINTERNAL, "failed to create output directory: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", chatextract.Errorf(chatextract.EINTERNAL, "failed to write conversation: %v", err)
	}
	return path, nil
}

// ExpandPath resolves a leading "~" to the current user's home
// directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", chatextract.Errorf(chatextract.EINTERNAL, "failed to resolve home directory: %v", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// Filename renders a filename template for a conversation. Supported
// placeholders are {service}, {timestamp}, {title} and {id}.
func Filename(template string, conv *chatextract.Conversation) string {
	if template == "" {
		template = chatextract.DefaultConfig().FilenameTemplate
	}
	r := strings.NewReplacer(
		"{service}", string(conv.Service),
		"{timestamp}", conv.ExtractedAt.Format("20060102_150405"),
		"{title}", slugify(conv.Title),
		"{id}", conv.ID,
	)
	return r.Replace(template)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "untitled"
	}
	return s
}
