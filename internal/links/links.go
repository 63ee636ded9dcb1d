// Package links finds references between posts inside raw post bodies.
//
// Two syntaxes are recognised: reference links (`[[target]]` or
// `[[target|label]]`) and standard markup links (`[label](url)`). Both are
// reduced to the same canonical identifier so they can be joined against
// post slugs.
package links

import (
	"regexp"
	"strings"
)

// PostsNamespace is the content type every link in the graph resolves into.
const PostsNamespace = "posts"

// Link is a single post reference found in a body.
type Link struct {
	// Raw is the link target with any #fragment removed.
	Raw string
	// Display is the visible label of the link.
	Display string
	// Slug is the canonical identifier the target resolves to.
	Slug string
}

var (
	referenceRe = regexp.MustCompile(`!?\[\[([^\]]+)\]\]`)
	standardRe  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	postPrefix  = regexp.MustCompile(`^/?posts?/?`)
)

// Extract runs both scans over body and returns reference links followed
// by standard links.
func Extract(body string) []Link {
	refs := ExtractReferenceLinks(body)
	std := ExtractStandardLinks(body)
	out := make([]Link, 0, len(refs)+len(std))
	out = append(out, refs...)
	return append(out, std...)
}

// ExtractReferenceLinks returns every `[[target]]` and `[[target|label]]` in
// body. Embedded media (`![[file.png]]`) is skipped.
func ExtractReferenceLinks(body string) []Link {
	var out []Link
	for _, match := range referenceRe.FindAllStringSubmatch(body, -1) {
		if strings.HasPrefix(match[0], "!") {
			continue
		}

		target, display := match[1], match[1]
		if pipe := strings.Index(match[1], "|"); pipe >= 0 {
			target, display = match[1][:pipe], match[1][pipe+1:]
		}

		base, _ := splitAnchor(target)
		out = append(out, Link{
			Raw:     base,
			Display: strings.TrimSpace(display),
			Slug:    ResolveID(base, PostsNamespace),
		})
	}
	return out
}

// ExtractStandardLinks returns every `[label](url)` in body whose url points
// at another post.
func ExtractStandardLinks(body string) []Link {
	var out []Link
	for _, match := range standardRe.FindAllStringSubmatch(body, -1) {
		display, url := match[1], match[2]
		if !IsInternalLink(url) {
			continue
		}

		path, _, ok := LinkPathFromURL(url)
		if !ok {
			continue
		}

		out = append(out, Link{
			Raw:     path,
			Display: strings.TrimSpace(display),
			Slug:    ResolveID(path, PostsNamespace),
		})
	}
	return out
}

// IsInternalLink reports whether url can refer to another post. External
// schemes, mail links and bare anchors never qualify. Anything else counts
// when it ends in .md, sits under posts/, or is a bare slug.
func IsInternalLink(url string) bool {
	url = strings.TrimSpace(url)

	switch {
	case url == "":
		return false
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return false
	case strings.HasPrefix(url, "mailto:"):
		return false
	case strings.HasPrefix(url, "#"):
		return false
	}

	return strings.HasSuffix(url, ".md") ||
		strings.HasPrefix(url, "/posts/") ||
		strings.HasPrefix(url, "posts/") ||
		!strings.Contains(url, "/")
}

// LinkPathFromURL normalizes an internal url into a link path. The anchor,
// if any, is returned separately. ok is false when nothing usable remains.
func LinkPathFromURL(url string) (path, anchor string, ok bool) {
	link, anchor := splitAnchor(strings.TrimSpace(url))

	switch {
	case hasPostPrefix(link), strings.HasSuffix(link, ".md"), !strings.Contains(link, "/"):
		path = normalizePostPath(link)
	default:
		return "", "", false
	}

	if path == "" {
		return "", "", false
	}
	return path, anchor, true
}

// ResolveID turns a link path into the canonical identifier used as a node
// key. Inside the posts namespace the identifier is the normalized path, so
// `[[my-post]]`, `[x](my-post)` and `[x](posts/my-post.md)` all agree.
func ResolveID(link, namespace string) string {
	id := normalizePostPath(strings.TrimSpace(link))
	if namespace == "" || namespace == PostsNamespace {
		return id
	}
	if id == "" {
		return ""
	}
	return namespace + "/" + id
}

func normalizePostPath(link string) string {
	if hasPostPrefix(link) {
		link = postPrefix.ReplaceAllString(link, "")
	}
	link = strings.TrimSuffix(link, ".md")

	// Folder based posts: "my-post/index" is the post "my-post".
	if strings.HasSuffix(link, "/index") && strings.Count(link, "/") == 1 {
		link = strings.TrimSuffix(link, "/index")
	}
	return link
}

func hasPostPrefix(link string) bool {
	for _, prefix := range []string{"posts/", "/posts/", "post/", "/post/"} {
		if strings.HasPrefix(link, prefix) {
			return true
		}
	}
	return false
}

func splitAnchor(link string) (string, string) {
	if hash := strings.Index(link, "#"); hash >= 0 {
		return link[:hash], link[hash+1:]
	}
	return link, ""
}
