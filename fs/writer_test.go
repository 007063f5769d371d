package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteConversation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := chatextract.DefaultConfig()
	cfg.OutputDir = dir

	conv := testConversation()
	path, err := fs.NewWriter().WriteConversation(conv, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "conversation_claude_20260115_093000.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Goroutine Leaks")
	assert.Contains(t, string(data), "How do I find goroutine leaks?")
}

func TestWriter_WriteConversation_CreatesDirectory(t *testing.T) {
	t.Parallel()

	cfg := chatextract.DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "out")

	path, err := fs.NewWriter().WriteConversation(testConversation(), cfg)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriter_WriteConversation_NilConversation(t *testing.T) {
	t.Parallel()

	_, err := fs.NewWriter().WriteConversation(nil, chatextract.DefaultConfig())
	require.Error(t, err)
	assert.Equal(t, chatextract.EINVALID, chatextract.ErrorCode(err))
}

func TestFilename(t *testing.T) {
	t.Parallel()

	conv := testConversation()

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"default placeholders", "conversation_{service}_{timestamp}.md", "conversation_claude_20260115_093000.md"},
		{"title slug", "{title}.md", "goroutine-leaks.md"},
		{"id", "{id}.md", "conv-1.md"},
		{"empty template falls back to default", "", "conversation_claude_20260115_093000.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.Filename(tt.template, conv))
		})
	}
}

func TestFilename_UntitledSlug(t *testing.T) {
	t.Parallel()

	conv := testConversation()
	conv.Title = "???"
	assert.Equal(t, "untitled.md", fs.Filename("{title}.md", conv))
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := fs.ExpandPath("~/Documents/Conversations")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Documents", "Conversations"), got)

	got, err = fs.ExpandPath("/tmp/out")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", got)
}

func testConversation() *chatextract.Conversation {
	return &chatextract.Conversation{
		ID:          "conv-1",
		Service:     chatextract.ServiceClaude,
		Title:       "Goroutine Leaks",
		URL:         "https://claude.ai/share/abc",
		ExtractedAt: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
		Method:      "json",
		Confidence:  0.9,
		Messages: []chatextract.Message{
			{Role: chatextract.RoleUser, Content: "How do I find goroutine leaks?", Sequence: 1},
			{Role: chatextract.RoleAssistant, Content: "Use pprof goroutine profiles.", Sequence: 2},
		},
	}
}
