package api

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/rumor-comb/app/rumors"
)

// Generator renders a lookup result as an RSS 2.0 channel so rumor lists can be
// subscribed to in a feed reader.
type Generator struct {
	siteURL string
	version string
}

func NewGenerator(siteURL, version string) *Generator {
	return &Generator{
		siteURL: siteURL,
		version: version,
	}
}

func (g *Generator) Run(result rumors.Result, selfLink string) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", fmt.Sprintf("%s rumors", result.Subject), 4)
	g.writeElement(&buf, "link", g.siteURL, 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Latest rumors about %s", result.Subject), 4)

	if selfLink != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(selfLink)))
	}

	lastBuildDate := time.Now().In(time.Local)
	if len(result.Items) > 0 {
		if published, ok := itemTime(result.Items[0]); ok {
			lastBuildDate = published
		}
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Rumor-Comb/%s", g.version), 4)

	for _, item := range result.Items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *Generator) writeItem(buf *bytes.Buffer, item rumors.Item) {
	buf.WriteString("    <item>\n")

	// Tag stream items may have no URL; date and title identify them instead.
	guid := cmp.Or(item.URL, item.Date+":"+item.Title)
	buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", item.URL != ""))
	xml.EscapeText(buf, []byte(guid))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", item.Title, 6)
	g.writeElement(buf, "link", item.URL, 6)
	g.writeElement(buf, "description", cmp.Or(item.Snippet, "No description available"), 6)

	if published, ok := itemTime(item); ok {
		g.writeElement(buf, "pubDate", published.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "category", item.Source, 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func itemTime(item rumors.Item) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", item.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
