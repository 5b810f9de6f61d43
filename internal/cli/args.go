// AngelaMos | 2026
// args.go

package cli

import (
	"errors"
	"strings"
)

var errUnterminatedQuote = errors.New("unterminated quote")

func trimLine(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// splitWords splits a shell line on whitespace. Single or double quotes
// group words and a backslash escapes the next character.
func splitWords(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		quote   rune
		inWord  bool
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}

// keyValues reads key=value words. Keys are lowercased; words without '='
// are returned as positional arguments.
func keyValues(words []string) (map[string]string, []string) {
	kv := make(map[string]string, len(words))
	var rest []string
	for _, w := range words {
		k, v, ok := strings.Cut(w, "=")
		if !ok || k == "" {
			rest = append(rest, w)
			continue
		}
		kv[strings.ToLower(k)] = v
	}
	return kv, rest
}
