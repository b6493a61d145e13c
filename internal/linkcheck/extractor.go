package linkcheck

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Link represents an extracted link from rendered HTML content.
type Link struct {
	URL      string // href value
	Text     string // link text
	External bool   // carries rel="external" or an absolute http(s) URL
}

// ExtractLinks extracts anchor links from a rendered HTML file.
func ExtractLinks(htmlPath string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts anchor links from an HTML reader.
func ExtractLinksFromReader(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			link := Link{}
			for _, attr := range n.Attr {
				switch attr.Key {
				case "href":
					link.URL = attr.Val
				case "rel":
					if attr.Val == "external" {
						link.External = true
					}
				}
			}
			link.Text = nodeText(n)
			if strings.HasPrefix(link.URL, "http://") || strings.HasPrefix(link.URL, "https://") {
				link.External = true
			}
			if link.URL != "" {
				links = append(links, link)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links, nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
