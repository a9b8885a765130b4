package parser

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// IsJapanese reports whether name is written in kana or kanji.
// Foreign horses appear in pedigree tables under their latin name.
func IsJapanese(name string) bool {
	script := whatlanggo.DetectScript(name)
	return script == unicode.Katakana || script == unicode.Hiragana || script == unicode.Han
}

// SplitName sorts a pedigree cell text into a japanese and an english name.
// Cells such as "ディープインパクト(JPN)" or "Sadler's Wells(USA)" lose their country suffix.
func SplitName(text string) (ja, en string) {
	name := strings.TrimSpace(text)
	if i := strings.IndexAny(name, "(（"); i > 0 {
		name = strings.TrimSpace(name[:i])
	}
	if name == "" {
		return "", ""
	}
	if IsJapanese(name) {
		return name, ""
	}
	return "", name
}
