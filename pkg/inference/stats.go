package inference

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/shape"
	"github.com/usestring/shapegen/pkg/value"
)

// FieldStat describes one path across all samples.
type FieldStat struct {
	Path          string   `json:"path"`                  // JSON pointer, "-" for array elements
	Shape         string   `json:"shape"`                 // Final shape at the path
	Frequency     float64  `json:"frequency"`             // Fraction of samples with a non-null parent that contain the path
	Required      bool     `json:"required"`              // Present in all such samples and never null
	Nullable      bool     `json:"nullable"`              // Null in at least one sample
	DistinctCount int      `json:"distinct_count"`        // Distinct non-null values observed
	Examples      []any    `json:"examples,omitempty"`    // Up to 3 scalar examples
	Format        string   `json:"format,omitempty"`      // uuid, iso8601, url, email or enum
	EnumValues    []string `json:"enum_values,omitempty"` // Distinct values when format is enum
}

const (
	maxExamples           = 3
	minSamplesForFormat   = 5
	maxEnumDistinctValues = 10
)

var (
	uuidRegex    = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	iso8601Regex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)
	urlRegex     = regexp.MustCompile(`^https?://`)
	emailRegex   = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// pathStats accumulates observations for one path. Bitmaps hold the indices
// of the samples the path was seen in.
type pathStats struct {
	present  *roaring.Bitmap
	nulls    *roaring.Bitmap
	distinct map[string]struct{}
	examples []any
	strings  []string

	// nonString is set once a non-null value other than a string is seen.
	nonString bool
}

type statsCollector struct {
	samples uint32
	order   []hints.Path
	byPath  map[hints.Path]*pathStats
}

func newStatsCollector() *statsCollector {
	return &statsCollector{byPath: make(map[hints.Path]*pathStats)}
}

// add observes one more sample.
func (c *statsCollector) add(v value.Value) {
	c.observe(c.samples, v, hints.Root)
	c.samples++
}

func (c *statsCollector) get(path hints.Path) *pathStats {
	ps, ok := c.byPath[path]
	if !ok {
		ps = &pathStats{
			present:  roaring.New(),
			nulls:    roaring.New(),
			distinct: make(map[string]struct{}),
		}
		c.byPath[path] = ps
		c.order = append(c.order, path)
	}
	return ps
}

func (c *statsCollector) observe(sample uint32, v value.Value, path hints.Path) {
	if path != hints.Root {
		ps := c.get(path)
		ps.present.Add(sample)
		switch v.Kind() {
		case value.KindNull:
			ps.nulls.Add(sample)
		case value.KindArray, value.KindObject:
			ps.nonString = true
			ps.distinct[fmt.Sprintf("%v", v.Interface())] = struct{}{}
		default:
			key := fmt.Sprintf("%s:%v", v.Kind(), v.Interface())
			if _, seen := ps.distinct[key]; !seen {
				ps.distinct[key] = struct{}{}
				if len(ps.examples) < maxExamples {
					ps.examples = append(ps.examples, v.Interface())
				}
			}
			if v.Kind() == value.KindString {
				ps.strings = append(ps.strings, v.StringValue())
			} else {
				ps.nonString = true
			}
		}
	}

	switch v.Kind() {
	case value.KindArray:
		elemPath := path.Elem()
		for _, e := range v.Elems() {
			c.observe(sample, e, elemPath)
		}
	case value.KindObject:
		v.Members(func(key string, member value.Value) bool {
			c.observe(sample, member, path.Field(key))
			return true
		})
	}
}

// finish produces one stat per path in first-seen order against the final
// shape.
func (c *statsCollector) finish(final shape.Shape) []FieldStat {
	if c.samples == 0 {
		return nil
	}

	all := roaring.New()
	all.AddRange(0, uint64(c.samples))

	stats := make([]FieldStat, 0, len(c.order))
	for _, path := range c.order {
		ps := c.byPath[path]

		eligible := all
		if parent, ok := c.byPath[parentPath(path)]; ok {
			eligible = roaring.AndNot(parent.present, parent.nulls)
		}

		stat := FieldStat{
			Path:          string(path),
			Nullable:      !ps.nulls.IsEmpty(),
			DistinctCount: len(ps.distinct),
			Examples:      ps.examples,
		}
		if s, ok := ShapeAt(final, path); ok {
			stat.Shape = s.String()
		}
		if n := eligible.GetCardinality(); n > 0 {
			stat.Frequency = float64(ps.present.GetCardinality()) / float64(n)
		}
		stat.Required = ps.present.GetCardinality() == eligible.GetCardinality() && ps.nulls.IsEmpty()
		if len(ps.strings) >= minSamplesForFormat && !ps.nonString {
			stat.Format, stat.EnumValues = detectFormat(ps.strings)
		}
		stats = append(stats, stat)
	}
	return stats
}

func parentPath(path hints.Path) hints.Path {
	i := strings.LastIndexByte(string(path), '/')
	if i <= 0 {
		return hints.Root
	}
	return path[:i]
}

// ShapeAt returns the shape found at path inside s, looking through
// Optional at every step.
func ShapeAt(s shape.Shape, path hints.Path) (shape.Shape, bool) {
	for _, seg := range path.Segments() {
		s, _ = s.Unwrap()
		switch {
		case seg == hints.ElemSegment && (s.Kind() == shape.KindArray || s.Kind() == shape.KindMap):
			s = s.Elem()
		case s.Kind() == shape.KindRecord:
			f, ok := s.Field(seg)
			if !ok {
				return shape.Unknown(), false
			}
			s = f.Shape
		default:
			return shape.Unknown(), false
		}
	}
	return s, true
}

// detectFormat detects common value formats for string fields.
func detectFormat(values []string) (string, []string) {
	for _, f := range []struct {
		name string
		re   *regexp.Regexp
	}{
		{"uuid", uuidRegex},
		{"iso8601", iso8601Regex},
		{"url", urlRegex},
		{"email", emailRegex},
	} {
		if allMatch(values, f.re) {
			return f.name, nil
		}
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) <= maxEnumDistinctValues {
		enumValues := make([]string, 0, len(distinct))
		for v := range distinct {
			enumValues = append(enumValues, v)
		}
		sort.Strings(enumValues)
		return "enum", enumValues
	}
	return "", nil
}

func allMatch(values []string, re *regexp.Regexp) bool {
	for _, v := range values {
		if !re.MatchString(v) {
			return false
		}
	}
	return true
}
