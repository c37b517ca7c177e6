// Package render turns stored answer markup into terminal output. It is a
// display concern only; search always runs on the raw markup.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

var (
	// Heading styles a question or section title.
	Heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	// Muted styles secondary details like ids and tags.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	// Mark flags bookmarked entries.
	Mark = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).SetString("★")
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Markdown converts answer HTML into simplified markdown.
func Markdown(body string) (string, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	walk(doc, &sb, 0)
	out := blankRuns.ReplaceAllString(sb.String(), "\n\n")
	return strings.TrimSpace(out), nil
}

func walk(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 64 {
		return
	}

	switch n.Type {
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			return
		}
		if startsWithSpace(n.Data) && sb.Len() > 0 && !endsWithSpace(sb.String()) {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
		if endsWithSpace(n.Data) {
			sb.WriteString(" ")
		}
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "h1", "h2", "h3":
			sb.WriteString("\n\n### ")
		case "p", "div":
			sb.WriteString("\n\n")
		case "br":
			sb.WriteString("\n")
		case "li":
			if n.Parent != nil && n.Parent.Data == "ol" {
				sb.WriteString(fmt.Sprintf("\n%d. ", position(n)))
			} else {
				sb.WriteString("\n- ")
			}
		case "strong", "b":
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
		case "u":
			sb.WriteString("_")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, sb, depth+1)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "strong", "b":
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
		case "u":
			sb.WriteString("_")
		case "a":
			if href := attr(n, "href"); href != "" {
				sb.WriteString(" (" + href + ")")
			}
		case "ul", "ol", "h1", "h2", "h3":
			sb.WriteString("\n\n")
		}
	}
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s[:1], " \t\n") == ""
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s[len(s)-1:], " \t\n") == ""
}

func position(li *html.Node) int {
	i := 1
	for s := li.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.Data == "li" {
			i++
		}
	}
	return i
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Terminal renders markdown for a terminal of the given width.
func Terminal(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
