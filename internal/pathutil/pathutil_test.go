package pathutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputRelativeReturnsForwardSlashes(t *testing.T) {
	outParts := []string{"home", "user", "site", "public"}
	fileParts := append(append([]string{}, outParts...), "graph", "graph-data.json")

	posixOut := filepath.Join(outParts...)
	posixFile := filepath.Join(fileParts...)

	rel, err := OutputRelative(posixOut, posixFile)
	if err != nil {
		t.Fatalf("OutputRelative returned error for POSIX paths: %v", err)
	}
	if rel != "graph/graph-data.json" {
		t.Fatalf("expected relative path 'graph/graph-data.json', got %q", rel)
	}

	windowsOut := strings.ReplaceAll(posixOut, string(filepath.Separator), "\\")
	windowsFile := strings.ReplaceAll(posixFile, string(filepath.Separator), "\\")

	rel, err = OutputRelative(windowsOut, windowsFile)
	if err != nil {
		t.Fatalf("OutputRelative returned error for Windows paths: %v", err)
	}
	if rel != "graph/graph-data.json" {
		t.Fatalf("expected relative path 'graph/graph-data.json', got %q", rel)
	}
}

func TestNormalizePathCleansSegments(t *testing.T) {
	got := NormalizePath("public\\graph\\..\\rss.xml")
	want := filepath.Join("public", "rss.xml")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if NormalizePath("") != "" {
		t.Fatalf("expected empty path to stay empty")
	}
}

func TestJoinURL(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"https://cms.example.com/", "/uploads/a.png", "https://cms.example.com/uploads/a.png"},
		{"https://cms.example.com", "uploads/a.png", "https://cms.example.com/uploads/a.png"},
		{"https://cms.example.com", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"", "/uploads/a.png", "/uploads/a.png"},
		{"https://cms.example.com", "", "https://cms.example.com"},
	}

	for _, c := range cases {
		if got := JoinURL(c.base, c.path); got != c.want {
			t.Fatalf("JoinURL(%q, %q) = %q, want %q", c.base, c.path, got, c.want)
		}
	}
}

func TestSiteURLAlwaysEndsInSlash(t *testing.T) {
	if got := SiteURL("https://example.com"); got != "https://example.com/" {
		t.Fatalf("unexpected root url %q", got)
	}
	if got := SiteURL("https://example.com/", "post", "hello-world"); got != "https://example.com/post/hello-world/" {
		t.Fatalf("unexpected post url %q", got)
	}
	if got := SiteURL("https://example.com/", "/posts/", "page", "2"); got != "https://example.com/posts/page/2/" {
		t.Fatalf("unexpected pagination url %q", got)
	}
}
