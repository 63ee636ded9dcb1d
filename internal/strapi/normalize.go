package strapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/Paintersrp/modular/internal/pathutil"
	"github.com/Paintersrp/modular/internal/render"
)

var validate = validator.New()

// ErrInvalidRecord marks a collection entry that is missing required fields.
var ErrInvalidRecord = errors.New("invalid record")

// item is one entry of a collection response. Older CMS versions nest the
// fields under "attributes"; newer ones return them flattened on the item.
type item struct {
	ID         int             `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
	raw        json.RawMessage
}

func (it *item) UnmarshalJSON(data []byte) error {
	type plain item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*it = item(p)
	it.raw = append(json.RawMessage(nil), data...)
	return nil
}

// fields returns the JSON object holding the entity fields, whichever
// shape the item arrived in.
func (it item) fields() json.RawMessage {
	if isPresent(it.Attributes) {
		return it.Attributes
	}
	return it.raw
}

// text accepts a JSON string and silently ignores any other value, since
// rich-text fields may come back as structured blocks.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = text(s)
	return nil
}

type entryFields struct {
	Title         text            `json:"title"`
	Slug          text            `json:"slug"`
	Content       text            `json:"content"`
	Description   text            `json:"description"`
	TargetKeyword text            `json:"targetKeyword"`
	Category      text            `json:"category"`
	Version       text            `json:"version"`
	Status        text            `json:"status"`
	RepositoryURL text            `json:"repositoryUrl"`
	DemoURL       text            `json:"demoUrl"`
	Locale        text            `json:"locale"`
	Order         int             `json:"order"`
	Featured      *bool           `json:"featured"`
	ShowTOC       *bool           `json:"showTOC"`
	Banner        json.RawMessage `json:"banner"`
	CoverImage    json.RawMessage `json:"coverImage"`
	Categories    json.RawMessage `json:"categories"`
	Date          text            `json:"date"`
	PublishedAt   text            `json:"publishedAt"`
	CreatedAt     text            `json:"createdAt"`
	UpdatedAt     text            `json:"updatedAt"`
	LastModified  text            `json:"lastModified"`
}

func decodeFields(it item) (entryFields, error) {
	var f entryFields
	if err := json.Unmarshal(it.fields(), &f); err != nil {
		return f, errors.Wrapf(err, "decode entry %d", it.ID)
	}
	return f, nil
}

type normalizer struct {
	baseURL string
	now     func() time.Time
}

func (n normalizer) post(it item) (Post, error) {
	f, err := decodeFields(it)
	if err != nil {
		return Post{}, err
	}

	published := parseTime(string(f.PublishedAt))
	created := parseTime(string(f.CreatedAt))
	p := Post{
		ID:          it.ID,
		Slug:        strings.TrimSpace(string(f.Slug)),
		Title:       strings.TrimSpace(string(f.Title)),
		Content:     string(f.Content),
		Description: string(f.Description),
		Keyword:     string(f.TargetKeyword),
		Date:        firstTime(n.now(), published, created),
		PublishedAt: published,
		CreatedAt:   created,
		UpdatedAt:   parseTime(string(f.UpdatedAt)),
		ImageURL:    mediaURL(f.Banner, n.baseURL),
		Tags:        categoryNames(f.Categories),
		Excerpt:     render.Excerpt(string(f.Content), render.DefaultExcerptLength),
		Locale:      string(f.Locale),
	}
	return p, check(p, it.ID)
}

func (n normalizer) page(it item) (Page, error) {
	f, err := decodeFields(it)
	if err != nil {
		return Page{}, err
	}

	p := Page{
		ID:           it.ID,
		Slug:         strings.TrimSpace(string(f.Slug)),
		Title:        strings.TrimSpace(string(f.Title)),
		Description:  string(f.Description),
		ImageURL:     mediaURL(f.CoverImage, n.baseURL),
		HTML:         string(f.Content),
		LastModified: parseTime(string(f.LastModified)),
		Locale:       string(f.Locale),
	}
	return p, check(p, it.ID)
}

func (n normalizer) project(it item) (Project, error) {
	f, err := decodeFields(it)
	if err != nil {
		return Project{}, err
	}

	p := Project{
		ID:            it.ID,
		Slug:          strings.TrimSpace(string(f.Slug)),
		Title:         strings.TrimSpace(string(f.Title)),
		Description:   string(f.Description),
		Date:          firstTime(n.now(), parseTime(string(f.Date)), parseTime(string(f.CreatedAt))),
		ImageURL:      mediaURL(f.CoverImage, n.baseURL),
		Categories:    categoryNames(f.Categories),
		RepositoryURL: string(f.RepositoryURL),
		DemoURL:       string(f.DemoURL),
		Status:        string(f.Status),
		HTML:          string(f.Content),
		Featured:      boolOr(f.Featured, false),
		Locale:        string(f.Locale),
	}
	return p, check(p, it.ID)
}

func (n normalizer) doc(it item) (Doc, error) {
	f, err := decodeFields(it)
	if err != nil {
		return Doc{}, err
	}

	d := Doc{
		ID:           it.ID,
		Slug:         strings.TrimSpace(string(f.Slug)),
		Title:        strings.TrimSpace(string(f.Title)),
		Description:  string(f.Description),
		Category:     string(f.Category),
		Order:        f.Order,
		Version:      string(f.Version),
		ImageURL:     mediaURL(f.CoverImage, n.baseURL),
		HTML:         string(f.Content),
		LastModified: parseTime(string(f.LastModified)),
		ShowTOC:      boolOr(f.ShowTOC, true),
		Featured:     boolOr(f.Featured, false),
		Locale:       string(f.Locale),
	}
	return d, check(d, it.ID)
}

func check(record any, id int) error {
	if err := validate.Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			missing := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				missing = append(missing, strings.ToLower(fe.Field())+" is "+fe.Tag())
			}
			return errors.Wrapf(ErrInvalidRecord, "entry %d: %s", id, strings.Join(missing, "; "))
		}
		return errors.Wrapf(err, "entry %d", id)
	}
	return nil
}

// categoryNames reads either {"data":[{"attributes":{"name":..}}]} or
// [{"name":..}] and drops empty names.
func categoryNames(raw json.RawMessage) []string {
	if !isPresent(raw) {
		return []string{}
	}

	type named struct {
		Name       string `json:"name"`
		Attributes *struct {
			Name string `json:"name"`
		} `json:"attributes"`
	}

	var entries []named
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return []string{}
		}
	} else {
		var nested struct {
			Data []named `json:"data"`
		}
		if err := json.Unmarshal(raw, &nested); err != nil {
			return []string{}
		}
		entries = nested.Data
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if e.Attributes != nil && e.Attributes.Name != "" {
			name = e.Attributes.Name
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// mediaURL reads {"url":..} or {"data":{"attributes":{"url":..}}} and
// makes relative upload paths absolute against the CMS base.
func mediaURL(raw json.RawMessage, base string) string {
	if !isPresent(raw) {
		return ""
	}

	var media struct {
		URL  *string `json:"url"`
		Data *struct {
			Attributes struct {
				URL string `json:"url"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &media); err != nil {
		return ""
	}

	switch {
	case media.URL != nil:
		if strings.HasPrefix(*media.URL, "http") {
			return *media.URL
		}
		return pathutil.JoinURL(base, *media.URL)
	case media.Data != nil && media.Data.Attributes.URL != "":
		return pathutil.JoinURL(base, media.Data.Attributes.URL)
	}
	return ""
}

func parseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func firstTime(fallback time.Time, candidates ...*time.Time) time.Time {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback.UTC()
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
