// Package feed generates RSS 2.0 feeds for exported sites.
package feed

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"
)

const DefaultDest = "/rss.xml"

var (
	ErrFeedDestNotXML    = errors.New("feed destination must end in .xml")
	ErrFeedTitleRequired = errors.New("feed title is required")
	ErrFeedSiteRequired  = errors.New("feed site URL is required")
)

type Item struct {
	Title       string
	Link        string
	Description string
	PubDate     time.Time
}

type Options struct {
	// Title and Site are required; everything else is optional.
	Title       string
	Description string
	Site        string
	Dest        string
	Stylesheet  string
	CustomData  string
	Items       []Item
}

func (o Options) destination() string {
	if o.Dest == "" {
		return DefaultDest
	}
	return normalizePath(o.Dest)
}

// Destination returns the normalized output path for the feed.
func (o Options) Destination() string {
	return o.destination()
}

func (o Options) validate() error {
	if o.Title == "" {
		return ErrFeedTitleRequired
	}
	if o.Site == "" {
		return ErrFeedSiteRequired
	}
	if !strings.HasSuffix(o.destination(), ".xml") {
		return fmt.Errorf("%w: %s", ErrFeedDestNotXML, o.destination())
	}
	for i, item := range o.Items {
		if item.Title == "" && item.Link == "" {
			return fmt.Errorf("feed item %d has neither title nor link", i)
		}
	}
	return nil
}

// Generate renders the feed to XML. Relative item links are resolved against
// the site URL; items without a date inherit the build time.
func Generate(opts Options) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(opts.Site)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", opts.Site, err)
	}

	now := time.Now()
	f := &feeds.Feed{
		Title:       opts.Title,
		Link:        &feeds.Link{Href: opts.Site},
		Description: opts.Description,
		Created:     now,
	}

	for _, item := range opts.Items {
		link, err := resolveLink(base, item.Link)
		if err != nil {
			return nil, err
		}
		created := item.PubDate
		if created.IsZero() {
			created = now
		}
		f.Items = append(f.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: link},
			Description: item.Description,
			Created:     created,
		})
	}

	xml, err := f.ToRss()
	if err != nil {
		return nil, fmt.Errorf("failed to render rss: %w", err)
	}

	if opts.CustomData != "" {
		xml = strings.Replace(xml, "</channel>", "  "+opts.CustomData+"\n  </channel>", 1)
	}

	if opts.Stylesheet != "" {
		pi := fmt.Sprintf(`<?xml-stylesheet type="text/xsl" href="%s"?>`, opts.Stylesheet)
		if idx := strings.Index(xml, "?>"); idx >= 0 {
			xml = xml[:idx+2] + "\n" + pi + xml[idx+2:]
		} else {
			xml = pi + "\n" + xml
		}
	}

	return []byte(xml), nil
}

// normalizePath mirrors core.NormalizePath without importing core, which
// would reintroduce the core ↔ feed import cycle.
func normalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func resolveLink(base *url.URL, link string) (string, error) {
	if link == "" {
		return base.String(), nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid item link %q: %w", link, err)
	}
	return base.ResolveReference(u).String(), nil
}
