package config

import (
	"os"
	"strings"
	"unicode"
)

// texSpecial are characters which TeX would interpret when file name is
// given to \input or passed on xelatex command line.
const texSpecial = "%#$&{}~^\\ "

// CleanFileName makes name safe for the file system and for TeX. Reserved
// and control characters are dropped, TeX special characters and spaces
// become underscores.
func CleanFileName(in string) string {
	var b strings.Builder
	b.Grow(len(in))
	for _, sym := range in {
		switch {
		case unicode.IsControl(sym),
			sym == os.PathSeparator, sym == os.PathListSeparator,
			strings.ContainsRune(reservedNameChars, sym):
		case strings.ContainsRune(texSpecial, sym):
			b.WriteByte('_')
		default:
			b.WriteRune(sym)
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	return out
}
