package richtext

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/interpretive-systems/hilabel/internal/tui/ansi"
)

// ParseANSI converts a string carrying SGR escape sequences into attributed
// text. Unsupported sequences are dropped.
func ParseANSI(s string) Text {
	var (
		b   Builder
		cur Attrs
		seg strings.Builder
	)
	flush := func() {
		if seg.Len() > 0 {
			b.Write(seg.String(), cur)
			seg.Reset()
		}
	}
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			next := ansi.ConsumeEscape(s, i)
			if params, ok := ansi.SGRParams(s[i:next]); ok {
				flush()
				cur = applySGR(cur, params)
			}
			i = next
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		seg.WriteString(s[i : i+size])
		i += size
	}
	flush()
	return b.Text()
}

func applySGR(a Attrs, params string) Attrs {
	if params == "" {
		return Attrs{}
	}
	codes := strings.Split(params, ";")
	for i := 0; i < len(codes); i++ {
		n, err := strconv.Atoi(codes[i])
		if err != nil {
			continue
		}
		switch {
		case n == 0:
			a = Attrs{}
		case n == 1:
			a.Bold = true
		case n == 2:
			a.Faint = true
		case n == 3:
			a.Italic = true
		case n == 4:
			a.Underline = true
		case n == 22:
			a.Bold, a.Faint = false, false
		case n == 23:
			a.Italic = false
		case n == 24:
			a.Underline = false
		case n >= 30 && n <= 37:
			a.Foreground = Color(strconv.Itoa(n - 30))
		case n == 39:
			a.Foreground = ""
		case n >= 40 && n <= 47:
			a.Background = Color(strconv.Itoa(n - 40))
		case n == 49:
			a.Background = ""
		case n >= 90 && n <= 97:
			a.Foreground = Color(strconv.Itoa(n - 90 + 8))
		case n >= 100 && n <= 107:
			a.Background = Color(strconv.Itoa(n - 100 + 8))
		case n == 38 || n == 48:
			c, used := extendedColor(codes[i+1:])
			i += used
			if n == 38 {
				a.Foreground = c
			} else {
				a.Background = c
			}
		}
	}
	return a
}

// extendedColor decodes the tail of a 38/48 sequence: "5;n" or "2;r;g;b".
func extendedColor(rest []string) (Color, int) {
	if len(rest) == 0 {
		return "", 0
	}
	switch rest[0] {
	case "5":
		if len(rest) < 2 {
			return "", len(rest)
		}
		return Color(rest[1]), 2
	case "2":
		if len(rest) < 4 {
			return "", len(rest)
		}
		var rgb [3]int
		for k := range rgb {
			v, err := strconv.Atoi(rest[1+k])
			if err != nil || v < 0 || v > 255 {
				return "", 4
			}
			rgb[k] = v
		}
		return Color(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])), 4
	}
	return "", 1
}
