package parser

import "strings"

// normalizeReplacer folds the Unicode variants OCR output is full of:
// smart quotes, long dashes, the ellipsis glyph and exotic spaces all
// become their plain ASCII equivalents, and line endings become "\n".
var normalizeReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"…", "...",
	" ", " ", // no-break space
	" ", " ",
	" ", " ",
	" ", " ",
	" ", " ",
	"​", "",
	" ", " ",
	"　", " ",
)

// NormalizeText canonicalizes punctuation, whitespace and line endings.
// Total: any string maps to a string.
func NormalizeText(raw string) string {
	return strings.TrimSpace(normalizeReplacer.Replace(raw))
}
