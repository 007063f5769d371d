package textscan

import (
	"strings"

	"github.com/fwojciec/chatextract"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ chatextract.TextSource = HTMLSource{}

// HTMLSource flattens HTML into line-oriented text by walking the
// parse tree, skipping script and style content. Each text node
// becomes its own line so segmentation sees element boundaries.
type HTMLSource struct{}

func (HTMLSource) Text(page string) (string, error) {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", chatextract.Errorf(chatextract.EINVALID, "failed to parse HTML: %v", err)
	}

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Head, atom.Title:
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				lines = append(lines, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(lines, "\n"), nil
}
