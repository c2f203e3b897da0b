package web

import (
	"bytes"
	"html/template"
	"log"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tokenPattern finds URLs, @mentions and /channel references in cast text
var tokenPattern = regexp.MustCompile(`https?://[^\s<>"]+|@[A-Za-z0-9][A-Za-z0-9_.-]*|/[a-z0-9][a-z0-9-]*`)

// trailingPunctuation is stripped from the end of a token and left as text
const trailingPunctuation = ".,;:!?)'\""

// Linkify escapes text and turns URLs, @mentions and /channel references into links.
// Mentions point at webBaseURL/{username}, channels at webBaseURL/~/channel/{name}.
func Linkify(text, webBaseURL string) template.HTML {
	base := strings.TrimSuffix(webBaseURL, "/")

	var buf bytes.Buffer
	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		start := loc[0]
		if start > 0 && !isTokenBoundary(text[start-1]) {
			continue
		}

		token := strings.TrimRight(text[loc[0]:loc[1]], trailingPunctuation)
		if len(token) < 2 {
			continue
		}

		href := tokenHref(token, base)
		if href == "" {
			continue
		}

		writeNode(&buf, textNode(text[last:start]))
		writeNode(&buf, linkNode(href, token))
		last = start + len(token)
	}
	writeNode(&buf, textNode(text[last:]))

	return template.HTML(buf.String())
}

func isTokenBoundary(b byte) bool {
	switch b {
	case ' ', '\n', '\t', '\r', '(':
		return true
	}
	return false
}

func tokenHref(token, base string) string {
	switch token[0] {
	case '@':
		return base + "/" + url.PathEscape(token[1:])
	case '/':
		return base + "/~/channel/" + url.PathEscape(token[1:])
	default:
		u, err := url.Parse(token)
		if err != nil || u.Host == "" {
			return ""
		}
		return u.String()
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func linkNode(href, label string) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr: []html.Attribute{
			{Key: "href", Val: href},
			{Key: "target", Val: "_blank"},
			{Key: "rel", Val: "noopener noreferrer"},
		},
	}
	a.AppendChild(textNode(label))
	return a
}

func writeNode(buf *bytes.Buffer, n *html.Node) {
	if n.Type == html.TextNode && n.Data == "" {
		return
	}
	if err := html.Render(buf, n); err != nil {
		log.Printf("[WEB] Failed to render text node: %v", err)
	}
}
