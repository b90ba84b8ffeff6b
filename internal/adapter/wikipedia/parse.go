package wikipedia

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/landmask-etl/internal/domain"
	"golang.org/x/net/html"
)

// ErrNoTable is returned when a page has no wikitable to read samples from.
var ErrNoTable = errors.New("no wikitable found")

// ParseSamples extracts samples from the first wikitable of a meridian page.
//
// Each row's first cell holds a span.geo with "lat; lon". The table colours
// water crossings through an inline style on that cell, so a styled cell is
// sea and a plain one is land. Rows without coordinates are skipped.
func ParseSamples(r io.Reader) ([]domain.Sample, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "table") && hasClass(n, "wikitable")
	})
	if table == nil {
		return nil, ErrNoTable
	}

	var samples []domain.Sample
	for _, row := range findAll(table, func(n *html.Node) bool { return isElement(n, "tr") }) {
		cell := findFirst(row, func(n *html.Node) bool { return isElement(n, "td") })
		if cell == nil {
			continue
		}
		geo := findFirst(cell, func(n *html.Node) bool {
			return isElement(n, "span") && hasClass(n, "geo")
		})
		if geo == nil {
			continue
		}
		lat, lon, ok := parseGeo(textContent(geo))
		if !ok {
			continue
		}

		category := domain.Land
		if _, styled := attr(cell, "style"); styled {
			category = domain.Sea
		}
		samples = append(samples, domain.Sample{Lat: lat, Lon: lon, Category: category})
	}
	return samples, nil
}

// parseGeo reads the "lat; lon" decimal form used by span.geo.
func parseGeo(s string) (float64, float64, bool) {
	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// findFirst returns the first descendant of n, in document order, that matches.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			out = append(out, c)
		}
		out = append(out, findAll(c, match)...)
	}
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
