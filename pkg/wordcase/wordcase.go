// Package wordcase converts arbitrary source keys into conventional
// identifier styles and singularizes plural keys for use as type names.
//
// Word boundaries follow ASCII rules only: a boundary starts at an
// alphanumeric run that follows non-alphanumeric characters, and between a
// lowercase letter and a following uppercase letter. Non-ASCII runes are
// carried through as ordinary word characters and never start a word.
package wordcase

import "strings"

// TypeCase returns name in PascalCase, e.g. "foo_bar" → "FooBar".
func TypeCase(name string) string {
	return upperFirst(camel(name))
}

// LowerCamelCase returns name in camelCase, e.g. "foo_bar" → "fooBar".
func LowerCamelCase(name string) string {
	return lowerFirst(camel(name))
}

// SnakeCase returns name in snake_case, e.g. "FooBar" → "foo_bar".
func SnakeCase(name string) string {
	return separated(name, '_')
}

// KebabCase returns name in kebab-case, e.g. "FooBar" → "foo-bar".
func KebabCase(name string) string {
	return separated(name, '-')
}

// ScreamingSnakeCase returns name in SCREAMING_SNAKE_CASE.
func ScreamingSnakeCase(name string) string {
	return asciiUpper(SnakeCase(name))
}

// ScreamingKebabCase returns name in SCREAMING-KEBAB-CASE.
func ScreamingKebabCase(name string) string {
	return asciiUpper(KebabCase(name))
}

// camel re-cases every word of name with an uppercase first letter and
// lowercase for the rest, dropping the non-alphanumeric separators.
func camel(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	last := ' '
	started := false
	for _, c := range name {
		if !started {
			if !isAlnum(c) {
				continue
			}
			started = true
		}
		if !isAlnum(c) && c < 0x80 {
			last = c
			continue
		}
		switch {
		case startsWord(last, c):
			b.WriteRune(toUpper(c))
		case isAlpha(last):
			b.WriteRune(toLower(c))
		default:
			b.WriteRune(c)
		}
		last = c
	}
	return b.String()
}

// separated lowercases name and puts sep at every word boundary.
func separated(name string, sep rune) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	last := 'A'
	started := false
	for _, c := range name {
		if !started {
			if !isAlnum(c) {
				continue
			}
			started = true
		}
		if !isAlnum(c) && c < 0x80 {
			last = c
			continue
		}
		if startsWord(last, c) {
			b.WriteRune(sep)
		}
		b.WriteRune(toLower(c))
		last = c
	}
	return b.String()
}

// startsWord reports whether c opens a new word given the previous rune.
func startsWord(last, c rune) bool {
	if !isAlnum(c) {
		return false
	}
	if last < 0x80 && !isAlnum(last) {
		return true
	}
	return isLower(last) && isUpper(c)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(toUpper(rune(s[0]))) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(toLower(rune(s[0]))) + s[1:]
}

func isLower(c rune) bool { return c >= 'a' && c <= 'z' }
func isUpper(c rune) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isAlpha(c rune) bool { return isLower(c) || isUpper(c) }
func isAlnum(c rune) bool { return isAlpha(c) || isDigit(c) }

func toUpper(c rune) rune {
	if isLower(c) {
		return c - ('a' - 'A')
	}
	return c
}

func toLower(c rune) rune {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
