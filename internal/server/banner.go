package server

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/HMasataka/serve/internal/config"
)

const (
	defaultTitle = "Simple Test Server"
	boxWidth     = 54
	boxIndent    = "   "
)

//go:generate mockgen -source banner.go -destination mock/banner.go

// Announcer tells a human where the server is listening.
type Announcer interface {
	Listening(url string)
	Stopped()
}

// Banner writes the startup and shutdown notices to w.
type Banner struct {
	w     io.Writer
	style string
	title string
	root  string
}

func NewBanner(w io.Writer, cfg config.BannerConfig, root string) *Banner {
	title := cfg.Title
	if title == "" {
		title = defaultTitle
	}

	return &Banner{w: w, style: cfg.Style, title: title, root: root}
}

func (b *Banner) Listening(url string) {
	if b.style == config.BannerBox {
		fmt.Fprint(b.w, box(b.title, "URL: "+url, "Serving: "+b.root))
		return
	}

	fmt.Fprintf(b.w, "Server running at %s\n", url)
	fmt.Fprintln(b.w, "Press Ctrl+C to stop")
}

func (b *Banner) Stopped() {
	fmt.Fprintln(b.w, "\nServer stopped by user")
}

// box frames lines with a blank line between each of them.
func box(lines ...string) string {
	width := boxWidth
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(boxIndent+l+boxIndent))
	}

	row := func(text string) string {
		pad := width - utf8.RuneCountInString(boxIndent+text)
		return "│" + boxIndent + text + strings.Repeat(" ", pad) + "│\n"
	}

	var sb strings.Builder
	sb.WriteString("\n┌" + strings.Repeat("─", width) + "┐\n")
	sb.WriteString(row(""))
	for _, l := range lines {
		sb.WriteString(row(l))
		sb.WriteString(row(""))
	}
	sb.WriteString("└" + strings.Repeat("─", width) + "┘\n")

	return sb.String()
}
