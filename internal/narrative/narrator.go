// Package narrative renders the text posted to a topic when time is
// registered on it, and the fixed labels used in reports.
package narrative

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/communiteq/time-registration/internal/core/ports"
)

// DefaultLocale is used when the requested locale has no catalogue.
const DefaultLocale = "en"

const (
	keyStarted         = "time_registration.started_action"
	keyEnded           = "time_registration.ended_action"
	keyManual          = "time_registration.manual_action"
	keyEdited          = "time_registration.edited_action"
	keyNoDescription   = "time_registration.no_description"
	keyPersonalMessage = "time_registration.personal_message"
	keyUncategorized   = "time_registration.uncategorized"
)

//go:embed locales/*.po
var catalogues embed.FS

// Narrator implements ports.Narrator on a gotext catalogue.
type Narrator struct {
	locale string
	po     *gotext.Po
}

var _ ports.Narrator = (*Narrator)(nil)

// New loads the catalogue for locale, falling back to DefaultLocale.
func New(locale string) (*Narrator, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = DefaultLocale
	}

	buf, err := catalogues.ReadFile(path.Join("locales", locale+".po"))
	if err != nil {
		locale = DefaultLocale
		buf, err = catalogues.ReadFile(path.Join("locales", DefaultLocale+".po"))
		if err != nil {
			return nil, fmt.Errorf("load default catalogue: %w", err)
		}
	}

	po := gotext.NewPo()
	po.Parse(buf)
	return &Narrator{locale: locale, po: po}, nil
}

// Locale reports the catalogue actually in use.
func (n *Narrator) Locale() string { return n.locale }

func (n *Narrator) Started(description string) string {
	return n.po.Get(keyStarted, description)
}

func (n *Narrator) Stopped(description, duration string) string {
	return n.po.Get(keyEnded, description, duration)
}

func (n *Narrator) Manual(description, duration string) string {
	return n.po.Get(keyManual, description, duration)
}

func (n *Narrator) Edited(description, duration string) string {
	return n.po.Get(keyEdited, description, duration)
}

func (n *Narrator) NoDescription() string   { return n.po.Get(keyNoDescription) }
func (n *Narrator) PersonalMessage() string { return n.po.Get(keyPersonalMessage) }
func (n *Narrator) Uncategorized() string   { return n.po.Get(keyUncategorized) }

// Locales lists the embedded catalogues.
func Locales() []string {
	entries, err := catalogues.ReadDir("locales")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(out)
	return out
}
