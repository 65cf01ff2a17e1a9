package main

import (
	"fmt"
	"io"
	"os"

	"github.com/usestring/shapegen/pkg/contenttype"
	"github.com/usestring/shapegen/pkg/hints"
	"github.com/usestring/shapegen/pkg/inference"
)

// readInputs reads every path as one input. No paths, or "-", read stdin.
func readInputs(stdin io.Reader, paths []string, maxBytes int) ([][]byte, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	inputs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		var (
			data []byte
			err  error
		)
		if p == "-" {
			data, err = io.ReadAll(io.LimitReader(stdin, int64(maxBytes)+1))
		} else {
			data, err = readFile(p, maxBytes)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", displayPath(p), err)
		}
		if len(data) > maxBytes {
			return nil, fmt.Errorf("reading %s: input exceeds %d bytes", displayPath(p), maxBytes)
		}
		inputs = append(inputs, data)
	}
	return inputs, nil
}

func readFile(path string, maxBytes int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, int64(maxBytes)+1))
}

func displayPath(p string) string {
	if p == "-" {
		return "stdin"
	}
	return p
}

// resolveFormat prefers the flag, then the extension of the first named
// file. All named files must agree.
func resolveFormat(flag string, paths []string) (inference.Format, error) {
	if flag != "" {
		return inference.ParseFormat(flag)
	}
	var found contenttype.Category
	for _, p := range paths {
		c := contenttype.FromPath(p)
		if c == contenttype.Unknown {
			continue
		}
		if found != contenttype.Unknown && found != c {
			return "", fmt.Errorf("inputs mix %s and %s files; pass --format", found, c)
		}
		found = c
	}
	if found == contenttype.YAML {
		return inference.FormatYAML, nil
	}
	return inference.FormatJSON, nil
}

// loadHints reads a hint file. An empty path means no hints.
func loadHints(path string) ([]hints.Pair, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hints: %w", err)
	}
	pairs, err := hints.ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}
