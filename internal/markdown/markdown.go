// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown turns blog bodies into HTML. Posts written in the old
// rich-text editor are stored as HTML and are served unchanged; everything
// else is treated as Markdown.
package markdown

import (
	"bytes"
	"html/template"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(highlighting.WithStyle("github")),
	),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	// Markdown posts may embed HTML snippets such as video iframes.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// IsHTML reports whether the body was stored as HTML. The rich-text editor
// always wrapped content in a block element.
func IsHTML(source string) bool {
	s := strings.TrimSpace(source)
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}

// Body renders a stored blog body for a template. Blog content is authored
// by signed-in staff only, so it is trusted. On conversion failure the raw
// text is escaped instead of dropped.
func Body(source string) template.HTML {
	if IsHTML(source) {
		return template.HTML(source)
	}
	out, err := ToHTML(source)
	if err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(source) + "</p>")
	}
	return template.HTML(out)
}
