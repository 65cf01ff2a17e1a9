package wordcase

import "fmt"

// Transform names an identifier style that can be applied to a source key.
type Transform int

const (
	Lower Transform = iota + 1
	Upper
	Pascal
	Camel
	Snake
	ScreamingSnake
	Kebab
	ScreamingKebab
)

var transformNames = map[Transform]string{
	Lower:          "lowercase",
	Upper:          "UPPERCASE",
	Pascal:         "PascalCase",
	Camel:          "camelCase",
	Snake:          "snake_case",
	ScreamingSnake: "SCREAMING_SNAKE_CASE",
	Kebab:          "kebab-case",
	ScreamingKebab: "SCREAMING-KEBAB-CASE",
}

// ParseTransform accepts the spellings used by serde-style rename_all
// attributes as well as their flattened lowercase forms.
func ParseTransform(s string) (Transform, error) {
	switch s {
	case "lowercase":
		return Lower, nil
	case "uppercase", "UPPERCASE":
		return Upper, nil
	case "pascalcase", "uppercamelcase", "PascalCase":
		return Pascal, nil
	case "camelcase", "camelCase":
		return Camel, nil
	case "snakecase", "snake_case":
		return Snake, nil
	case "screamingsnakecase", "SCREAMING_SNAKE_CASE":
		return ScreamingSnake, nil
	case "kebabcase", "kebab-case":
		return Kebab, nil
	case "screamingkebabcase", "SCREAMING-KEBAB-CASE":
		return ScreamingKebab, nil
	}
	return 0, fmt.Errorf("unknown string transform: %q", s)
}

// String returns the canonical spelling of t.
func (t Transform) String() string {
	if s, ok := transformNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Transform(%d)", int(t))
}

// Apply converts name to the style t. An unknown transform returns name
// unchanged.
func (t Transform) Apply(name string) string {
	switch t {
	case Lower:
		return asciiLower(name)
	case Upper:
		return asciiUpper(name)
	case Pascal:
		return TypeCase(name)
	case Camel:
		return LowerCamelCase(name)
	case Snake:
		return SnakeCase(name)
	case ScreamingSnake:
		return ScreamingSnakeCase(name)
	case Kebab:
		return KebabCase(name)
	case ScreamingKebab:
		return ScreamingKebabCase(name)
	}
	return name
}
