// Package hints holds caller-supplied overrides keyed by structural path.
package hints

import "strings"

// ElemSegment is the path step standing for every element of an array or
// every value of a map.
const ElemSegment = "-"

// Path is a JSON pointer into a sample document. Array elements are not
// indexed: the step "-" covers all of them. The root is the empty path.
type Path string

// Root is the path of the document itself.
const Root Path = ""

var (
	keyEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	keyUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Field returns the path of the object member key below p.
func (p Path) Field(key string) Path {
	return p + "/" + Path(keyEscaper.Replace(key))
}

// Elem returns the path of the array elements (or map values) below p.
func (p Path) Elem() Path {
	return p + "/" + ElemSegment
}

// Segments returns the unescaped steps of p. The root has none.
func (p Path) Segments() []string {
	if p == Root {
		return nil
	}
	parts := strings.Split(string(p)[1:], "/")
	for i, part := range parts {
		parts[i] = keyUnescaper.Replace(part)
	}
	return parts
}

func (p Path) String() string { return string(p) }

// ParsePath normalizes a user-written path. It accepts "", "/", "#" and
// "#/a/b", and adds a missing leading slash ("a/-" becomes "/a/-"). Array
// indices are not translated; use "-".
func ParsePath(s string) Path {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if s == "" || s == "/" {
		return Root
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return Path(s)
}
