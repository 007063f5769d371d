package main_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/chatextract"
	main "github.com/fwojciec/chatextract/cmd/chatextract"
	"github.com/fwojciec/chatextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sharePage = `<html><head><title>Sorting in Go - ChatGPT</title></head><body>
<script>window.__INITIAL_STATE__ = {"conversation":{"title":"Sorting in Go","messages":[{"role":"user","content":"How do I sort a slice of structs by one field in Go? I want it stable."},{"role":"assistant","content":"Use slices.SortStableFunc with a comparison function over the field you care about."}]}};</script>
</body></html>`

func TestCmdExtract_LocalFile(t *testing.T) {
	t.Parallel()

	deps, stdout, stderr := testDeps(t)

	input := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(input, []byte(sharePage), 0644))

	cmd := &main.ExtractCmd{Inputs: []string{input}}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), "Extracted 2 messages")
	assert.Contains(t, stdout.String(), "Saved to")
	assert.Empty(t, stderr.String())

	entries, err := os.ReadDir(deps.Config.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(deps.Config.OutputDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sorting in Go")
	assert.Contains(t, string(data), "slices.SortStableFunc")
}

func TestCmdExtract_Latin1File(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(t)

	// 0xE9 is é in Latin-1; the raw file is not valid UTF-8.
	page := strings.ReplaceAll(sharePage, "slices.SortStableFunc", "slices.SortStableFunc, caf\xe9 tip")
	input := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(input, []byte(page), 0644))

	cmd := &main.ExtractCmd{Inputs: []string{input}}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), "Extracted 2 messages")

	entries, err := os.ReadDir(deps.Config.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(deps.Config.OutputDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "café tip")
}

func TestCmdExtract_FetchesURL(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(t)
	var fetched string
	deps.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			fetched = url
			return sharePage, nil
		},
	}

	cmd := &main.ExtractCmd{Inputs: []string{"https://chatgpt.com/share/abc"}}
	require.NoError(t, cmd.Run(deps))

	assert.Equal(t, "https://chatgpt.com/share/abc", fetched)
	assert.Contains(t, stdout.String(), "Extracted 2 messages")
}

func TestCmdExtract_FetchFailureShowsHint(t *testing.T) {
	t.Parallel()

	deps, _, stderr := testDeps(t)
	deps.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", chatextract.Errorf(chatextract.EUNAVAILABLE, "HTTP 503 for %s", url)
		},
	}

	cmd := &main.ExtractCmd{Inputs: []string{"https://chatgpt.com/share/abc"}}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "HTTP 503")
	assert.Contains(t, stderr.String(), "Hint:")
}

func TestCmdExtract_SaveArchivesConversation(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(t)
	var saved *chatextract.Conversation
	deps.Conversations = &mock.ConversationService{
		CreateConversationFn: func(ctx context.Context, conv *chatextract.Conversation) error {
			saved = conv
			return nil
		},
	}

	input := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(input, []byte(sharePage), 0644))

	cmd := &main.ExtractCmd{Inputs: []string{input}, Save: true}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), "Archived as")
	require.NotNil(t, saved)
	assert.Len(t, saved.Messages, 2)
	assert.Equal(t, "Sorting in Go", saved.Title)
}

func TestCmdExtract_SaveDuplicateIsNotAnError(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(t)
	deps.Conversations = &mock.ConversationService{
		CreateConversationFn: func(ctx context.Context, conv *chatextract.Conversation) error {
			return chatextract.Errorf(chatextract.ECONFLICT, "conversation already archived as conv-1")
		},
	}

	input := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(input, []byte(sharePage), 0644))

	cmd := &main.ExtractCmd{Inputs: []string{input}, Save: true}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), "Already archived")
}

func TestCmdExtract_NoConversationRendersAttempts(t *testing.T) {
	t.Parallel()

	deps, _, stderr := testDeps(t)

	input := filepath.Join(t.TempDir(), "empty.html")
	require.NoError(t, os.WriteFile(input, []byte("<html><body><p>hi</p></body></html>"), 0644))

	cmd := &main.ExtractCmd{Inputs: []string{input}}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, chatextract.EEXTRACT, chatextract.ErrorCode(err))
	assert.Contains(t, stderr.String(), "No conversation found")
	assert.Contains(t, stderr.String(), "json")
	assert.Contains(t, stderr.String(), "dom")
	assert.Contains(t, stderr.String(), "text")
	assert.Contains(t, stderr.String(), "Hint:")
}

func TestCmdExtract_InvalidService(t *testing.T) {
	t.Parallel()

	deps, _, stderr := testDeps(t)

	cmd := &main.ExtractCmd{Inputs: []string{"page.html"}, Service: "copilot"}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, chatextract.EINVALID, chatextract.ErrorCode(err))
	assert.Contains(t, stderr.String(), "error:")
}

func TestCmdExtract_MissingFile(t *testing.T) {
	t.Parallel()

	deps, _, stderr := testDeps(t)

	cmd := &main.ExtractCmd{Inputs: []string{filepath.Join(t.TempDir(), "missing.html")}}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "cannot read")
}

func TestCmdExtract_OutputOverride(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(t)
	override := filepath.Join(t.TempDir(), "out")

	input := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(input, []byte(sharePage), 0644))

	cmd := &main.ExtractCmd{Inputs: []string{input}, Output: override}
	require.NoError(t, cmd.Run(deps))

	assert.Contains(t, stdout.String(), override)
	entries, err := os.ReadDir(override)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
