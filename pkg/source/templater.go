package source

import "context"

// Templater expands raw source into templated text and a position map.
type Templater interface {
	Name() string
	Expand(ctx context.Context, path, raw string, vars map[string]any) (*File, error)
}

// RawTemplater performs no templating.
type RawTemplater struct{}

// Name implements Templater.
func (RawTemplater) Name() string { return "raw" }

// Expand implements Templater.
func (RawTemplater) Expand(_ context.Context, path, raw string, _ map[string]any) (*File, error) {
	return NewLiteralFile(path, raw), nil
}
