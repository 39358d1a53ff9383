package tui

import (
	"fmt"
	"os"

	"github.com/leonelquinteros/gotext"
)

// textDomain is the gettext domain for interface strings; catalogs live at
// <locale_dir>/<language>/LC_MESSAGES/rasaratna.po.
const textDomain = "rasaratna"

// tr translates interface chrome. Untranslated ids are returned as-is, so
// the English msgids double as the built-in locale.
var tr = gotext.Get

// ConfigureLocale points gotext at dir for language. An empty dir keeps the
// built-in English strings.
//
// Postcondition: returns an error only when dir is set but unreadable.
func ConfigureLocale(dir, language string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("tui: locale dir: %w", err)
	}
	gotext.Configure(dir, language, textDomain)
	return nil
}
