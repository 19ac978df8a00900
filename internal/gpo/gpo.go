// Package gpo talks to the GPO govinfo service: per-jacket transcript
// retrieval, HTML to text extraction, and metadata inference from jacket
// codes. The parsing core never reaches the network; this package is its
// only boundary.
package gpo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/cognicore/gavel/pkg/gavel/internalerr"
	"github.com/cognicore/gavel/pkg/gavel/roster"
)

const transcriptURL = "https://www.govinfo.gov/content/pkg/%s/html/%s.htm"

var jacketPartsRe = regexp.MustCompile(`^CHRG-(\d+)([a-z])hrg(\d+)$`)

// Meta is the hearing metadata encoded in a jacket identifier.
type Meta struct {
	Congress int
	Chamber  string
}

// ParseJacket decodes the congress and chamber from a jacket code, e.g.
// CHRG-113jhrg79942 is a joint hearing of the 113th.
func ParseJacket(jacket string) (Meta, error) {
	m := jacketPartsRe.FindStringSubmatch(jacket)
	if m == nil {
		return Meta{}, fmt.Errorf("jacket %q: %w", jacket, internalerr.ErrInvalidJacket)
	}
	congress, err := strconv.Atoi(m[1])
	if err != nil {
		return Meta{}, fmt.Errorf("jacket %q: %w", jacket, internalerr.ErrInvalidJacket)
	}

	var chamber string
	switch m[2] {
	case "h":
		chamber = roster.ChamberHouse
	case "s":
		chamber = roster.ChamberSenate
	case "j":
		chamber = roster.ChamberJoint
	default:
		return Meta{}, fmt.Errorf("jacket %q: unknown chamber letter %q: %w", jacket, m[2], internalerr.ErrInvalidJacket)
	}
	return Meta{Congress: congress, Chamber: chamber}, nil
}

// Client fetches hearing transcripts from govinfo.
type Client struct {
	http *http.Client
}

// NewClient creates a govinfo client.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 30 * time.Second}}
}

// FetchTranscript downloads and extracts the plain-text transcript for one
// jacket. The printed line structure is preserved; the segmenter depends on
// indentation.
func (c *Client) FetchTranscript(ctx context.Context, jacket string) (string, error) {
	if _, err := ParseJacket(jacket); err != nil {
		return "", err
	}

	url := fmt.Sprintf(transcriptURL, jacket, jacket)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("transcript %s: %w", jacket, internalerr.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript %s: HTTP %d", jacket, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return ExtractText(string(body))
}

// ExtractText pulls the transcript text out of a govinfo HTML page. The
// transcript body lives in a <pre> block when present; otherwise all text
// nodes are concatenated.
func ExtractText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	if pre := findElement(doc, "pre"); pre != nil {
		return collectText(pre), nil
	}
	return collectText(doc), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
