package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dastanaron/bookmarks-csv/internal/models"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Input formats understood by the parser
const (
	FormatChromium = "chromium"
	FormatHTML     = "html"
)

// OtherFolderName names the folder that receives top-level html entries
const OtherFolderName = "Other bookmarks"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser parses bookmark files into documents
type Parser struct{}

// NewParser creates a new parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes r according to format
func (p *Parser) Parse(format string, r io.Reader) (*models.Document, error) {
	switch format {
	case FormatChromium, "":
		return p.ParseJSON(r)
	case FormatHTML:
		return p.ParseBookmarksHTML(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// ParseJSON parses a Chromium-family "Bookmarks" file
func (p *Parser) ParseJSON(r io.Reader) (*models.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseBookmarksHTML parses a Netscape bookmark file.
// The folder flagged as personal toolbar becomes the bookmark bar root;
// every other top-level entry is placed under the other root.
func (p *Parser) ParseBookmarksHTML(r io.Reader) (*models.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var toolbar *models.Node
	var topLevel []*models.Node
	var folderStack []*models.Node

	add := func(n *models.Node) {
		if len(folderStack) > 0 {
			folderStack[len(folderStack)-1].Add(n)
			return
		}
		topLevel = append(topLevel, n)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H3:
				folder := folderNode(n)
				if toolbar == nil && len(folderStack) == 0 && attr(n, "personal_toolbar_folder") == "true" {
					toolbar = folder
				} else {
					add(folder)
				}
				folderStack = append(folderStack, folder)
				return
			case atom.A:
				add(linkNode(n))
				return
			}
		}

		// A folder stays open until the element holding its header ends
		depth := len(folderStack)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		folderStack = folderStack[:depth]
	}
	walk(doc)

	out := &models.Document{Roots: map[string]*models.Node{}}
	if toolbar != nil {
		out.Roots[models.RootBookmarkBar] = toolbar
	}
	if len(topLevel) > 0 {
		out.Roots[models.RootOther] = models.NewFolder(OtherFolderName, topLevel...)
	}
	return out, nil
}

func folderNode(n *html.Node) *models.Node {
	folder := models.NewFolder(textContent(n))
	for _, a := range n.Attr {
		switch a.Key {
		case "add_date":
			folder.Fields[models.FieldDateAdded] = unixDate(a.Val)
		case "last_modified":
			folder.Fields[models.FieldDateModified] = unixDate(a.Val)
		}
	}
	return folder
}

func linkNode(n *html.Node) *models.Node {
	fields := map[string]any{models.FieldName: textContent(n)}
	for _, a := range n.Attr {
		switch a.Key {
		case "href":
			fields[models.FieldURL] = a.Val
		case "add_date":
			fields[models.FieldDateAdded] = unixDate(a.Val)
		case "last_modified":
			fields[models.FieldDateModified] = unixDate(a.Val)
		default:
			fields[a.Key] = a.Val
		}
	}
	return models.NewURL(fields)
}

// unixDate converts Unix seconds to a vendor-epoch timestamp, leaving other text as is
func unixDate(v string) string {
	sec, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return v
	}
	return models.WebKitFromUnixSeconds(sec)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(sb.String())
}
