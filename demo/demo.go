// Package demo provides the built-in scenes referenced by name from shot
// files and the command line.
package demo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kylittle/Crucible/scene"
)

var ErrUnknownScene = errors.New("demo: unknown scene")

// Builds a scene. The seed drives any procedural placement so a scene can
// be reproduced exactly.
type Builder func(seed uint64) (*scene.Scene, error)

// A registered demo scene.
type Entry struct {
	Name        string
	Description string
	Build       Builder
}

var registry = make(map[string]Entry)

func register(e Entry) {
	registry[e.Name] = e
}

// Fetch a demo scene by name.
func Lookup(name string) (Entry, error) {
	e, exists := registry[name]
	if !exists {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return e, nil
}

// All registered demo scenes, sorted by name.
func List() []Entry {
	out := make([]Entry, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
