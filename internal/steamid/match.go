package steamid

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DocumentMatcher finds a canonical account id in a profile page
type DocumentMatcher interface {
	Name() string
	Match(doc string) (string, bool)
}

// DefaultMatchers is the ordered chain used to scrape profile pages
var DefaultMatchers = []DocumentMatcher{
	&regexpMatcher{name: "json-key", re: regexp.MustCompile(`"steamid"\s*:\s*"(\d{17})"`)},
	&regexpMatcher{name: "profile-data", re: regexp.MustCompile(`g_rgProfileData\s*=\s*\{[^}]*?"steamid"\s*:\s*"(\d{17})"`)},
	&attributeMatcher{name: "data-attribute", attr: "data-steamid"},
}

// ExtractID runs matchers in order and returns the first id found
func ExtractID(doc string, matchers ...DocumentMatcher) (string, bool) {
	if len(matchers) == 0 {
		matchers = DefaultMatchers
	}
	for _, m := range matchers {
		if id, ok := m.Match(doc); ok {
			return id, true
		}
	}
	return "", false
}

type regexpMatcher struct {
	name string
	re   *regexp.Regexp
}

func (m *regexpMatcher) Name() string {
	return m.name
}

func (m *regexpMatcher) Match(doc string) (string, bool) {
	match := m.re.FindStringSubmatch(doc)
	if len(match) < 2 {
		return "", false
	}
	return match[1], true
}

// attributeMatcher walks the token stream looking for an element attribute
// holding a canonical id
type attributeMatcher struct {
	name string
	attr string
}

func (m *attributeMatcher) Name() string {
	return m.name
}

func (m *attributeMatcher) Match(doc string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			for _, a := range z.Token().Attr {
				if a.Key != m.attr {
					continue
				}
				val := strings.TrimSpace(a.Val)
				if IsCanonical(val) {
					return val, true
				}
			}
		}
	}
}
