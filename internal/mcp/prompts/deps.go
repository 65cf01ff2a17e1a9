// Package prompts contains MCP prompt implementations for shapegen.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultOutputMode string
	MaxSamples        int
}
