// Package fonts tracks the webfont stylesheets a language tab needs.
package fonts

import (
	"sync"

	"go.uber.org/zap"

	"github.com/insightdelivered/statement-desk/internal/models"
)

// Stylesheet names.
const (
	NotoSans           = "noto-sans"
	NotoSansTamil      = "noto-sans-tamil"
	NotoSansDevanagari = "noto-sans-devanagari"
	googleFontsCSS     = "https://fonts.googleapis.com/css2?family="
	fontWeightsAndSwap = ":wght@400;700&display=swap"
)

type stylesheet struct {
	name   string
	href   string
	family string
}

// in load order
var stylesheets = []stylesheet{
	{NotoSans, googleFontsCSS + "Noto+Sans" + fontWeightsAndSwap, "'Noto Sans', sans-serif"},
	{NotoSansTamil, googleFontsCSS + "Noto+Sans+Tamil" + fontWeightsAndSwap, "'Noto Sans Tamil', sans-serif"},
	{NotoSansDevanagari, googleFontsCSS + "Noto+Sans+Devanagari" + fontWeightsAndSwap, "'Noto Sans Devanagari', sans-serif"},
}

func stylesheetFor(lang models.Language) stylesheet {
	switch lang {
	case models.LanguageTamil:
		return stylesheets[1]
	case models.LanguageHindi:
		return stylesheets[2]
	default:
		return stylesheets[0]
	}
}

// StylesheetURL returns the stylesheet href for a language. Unknown
// languages get Noto Sans.
func StylesheetURL(lang models.Language) string {
	return stylesheetFor(lang).href
}

// FamilyFor returns the CSS font-family applied to a language tab.
func FamilyFor(lang models.Language) string {
	return stylesheetFor(lang).family
}

// Head is the set of stylesheet links of a page.
type Head struct {
	mu    sync.Mutex
	links []string
}

// Links returns the hrefs in the order they were added.
func (h *Head) Links() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.links...)
}

// HasLink reports whether href is already linked.
func (h *Head) HasLink(href string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hasLink(href)
}

func (h *Head) hasLink(href string) bool {
	for _, l := range h.links {
		if l == href {
			return true
		}
	}
	return false
}

// addLink appends href unless present and reports whether it did.
func (h *Head) addLink(href string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hasLink(href) {
		return false
	}
	h.links = append(h.links, href)
	return true
}

// Loader adds font stylesheets to a Head.
type Loader struct {
	head   *Head
	logger *zap.Logger
}

// NewLoader returns a loader for head.
func NewLoader(head *Head, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{head: head, logger: logger}
}

// LoadAll links every font stylesheet.
func (l *Loader) LoadAll() {
	for _, s := range stylesheets {
		if l.head.addLink(s.href) {
			l.logger.Debug("font stylesheet linked", zap.String("font", s.name))
		}
	}
}

// LoadForLanguage links the stylesheet lang needs unless the page already
// has it. It returns the href and whether a link was added.
func (l *Loader) LoadForLanguage(lang models.Language) (string, bool) {
	s := stylesheetFor(lang)
	added := l.head.addLink(s.href)
	if added {
		l.logger.Debug("font stylesheet linked",
			zap.String("font", s.name),
			zap.String("language", lang.String()))
	}
	return s.href, added
}
