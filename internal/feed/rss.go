package feed

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/Paintersrp/modular/internal/pathutil"
	"github.com/Paintersrp/modular/internal/render"
	"github.com/Paintersrp/modular/internal/strapi"
)

const (
	rssGenerator = "modular"
	rssDocs      = "https://www.rssboard.org/rss-specification"
	rssTTL       = 60
)

type rssDocument struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	AtomNS    string     `xml:"xmlns:atom,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	DCNS      string     `xml:"xmlns:dc,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string   `xml:"title"`
	Link           string   `xml:"link"`
	Description    string   `xml:"description"`
	Self           atomLink `xml:"atom:link"`
	Language       string   `xml:"language,omitempty"`
	Copyright      string   `xml:"copyright,omitempty"`
	ManagingEditor string   `xml:"managingEditor,omitempty"`
	WebMaster      string   `xml:"webMaster,omitempty"`
	LastBuildDate  string   `xml:"lastBuildDate"`
	Generator      string   `xml:"generator"`
	Docs           string   `xml:"docs"`
	TTL            int      `xml:"ttl"`
	Items          []rssItem
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	XMLName     xml.Name      `xml:"item"`
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        rssGUID       `xml:"guid"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate"`
	Categories  []string      `xml:"category"`
	Author      string        `xml:"dc:creator,omitempty"`
	Enclosure   *rssEnclosure `xml:"enclosure"`
	Keyword     string        `xml:"keyword,omitempty"`
	Image       string        `xml:"image,omitempty"`
	Content     *rssContent
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length string `xml:"length,attr"`
}

type rssContent struct {
	XMLName xml.Name `xml:"content:encoded"`
	Body    string   `xml:",cdata"`
}

// RSS renders an RSS 2.0 channel of every published post, newest first.
// Post bodies are rendered to HTML into content:encoded.
func RSS(site Site, posts []strapi.Post, now time.Time) ([]byte, error) {
	home := pathutil.SiteURL(site.URL)

	channel := rssChannel{
		Title:         site.Title,
		Link:          home,
		Description:   site.Description,
		Self:          atomLink{Href: home + RSSName, Rel: "self", Type: "application/rss+xml"},
		Language:      site.Language,
		LastBuildDate: rfc(now),
		Generator:     rssGenerator,
		Docs:          rssDocs,
		TTL:           rssTTL,
		Items:         []rssItem{},
	}
	if site.Author != "" {
		channel.Copyright = "Copyright © " + strconv.Itoa(now.UTC().Year()) + " " + site.Author
		channel.ManagingEditor = site.Author
		channel.WebMaster = site.Author
	}

	for _, p := range published(posts) {
		link := home + "post/" + p.Slug
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        rssGUID{Value: link, IsPermaLink: true},
			Description: summary(p),
			PubDate:     rfc(*p.PublishedAt),
			Categories:  p.Tags,
			Author:      site.Author,
			Keyword:     p.Keyword,
			Image:       p.ImageURL,
		}
		if p.ImageURL != "" {
			item.Enclosure = &rssEnclosure{URL: p.ImageURL, Type: mimeType(p.ImageURL), Length: "0"}
		}

		body, err := render.HTML(p.Content)
		if err != nil {
			return nil, err
		}
		if body != "" {
			item.Content = &rssContent{Body: body}
		}

		channel.Items = append(channel.Items, item)
	}

	return marshal(rssDocument{
		Version:   "2.0",
		AtomNS:    "http://www.w3.org/2005/Atom",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		DCNS:      "http://purl.org/dc/elements/1.1/",
		Channel:   channel,
	}, "rss channel")
}
