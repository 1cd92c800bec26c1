// Package generation keeps the generated solution, project files and workspace of a host project in sync with its
// build graph. Every write passes through a content-equality gate, so regenerating unchanged content leaves files
// and their modification times untouched.
package generation

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Names of the registered generators.
const (
	SolutionGeneratorName  = "solution"
	WorkspaceGeneratorName = "workspace"
	CombinedGeneratorName  = "combined"
)

// Generator keeps a set of artifacts in sync with the host build graph.
type Generator interface {
	// Name returns the registered name of the generator.
	Name() string

	// Sync regenerates every artifact of the generator.
	Sync() error

	// SyncIfNeeded regenerates what a batch of changed paths requires, or nothing. affectedPaths were created,
	// modified, moved or deleted; reimportedPaths were re-imported by the host.
	SyncIfNeeded(affectedPaths []string, reimportedPaths []string) error
}

// GeneratorFactory creates a Generator over the given settings.
type GeneratorFactory func(settings *Settings) Generator

// generatorFactories maps a generator name to its factory. Items are populated in the init method.
var generatorFactories map[string]GeneratorFactory

// init registers the supported generators.
func init() {
	factories := []struct {
		name    string
		factory GeneratorFactory
	}{
		{SolutionGeneratorName, func(settings *Settings) Generator { return NewSolutionGenerator(settings) }},
		{WorkspaceGeneratorName, func(settings *Settings) Generator { return NewWorkspaceGenerator(settings) }},
		{CombinedGeneratorName, func(settings *Settings) Generator { return NewCombinedGenerator(settings) }},
	}

	generatorFactories = make(map[string]GeneratorFactory)
	for _, f := range factories {
		if _, exists := generatorFactories[f.name]; exists {
			panic(fmt.Errorf("the generator '%s' is registered more than once", f.name))
		}
		generatorFactories[f.name] = f.factory
	}
}

// GetSupportedGenerators returns the names of the registered generators, sorted.
func GetSupportedGenerators() []string {
	names := make([]string, 0, len(generatorFactories))
	for name := range generatorFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupportedGenerator returns true if a generator is registered under the name.
func IsSupportedGenerator(name string) bool {
	_, ok := generatorFactories[name]
	return ok
}

// NewGenerator creates the generator registered under the name.
func NewGenerator(name string, settings *Settings) (Generator, error) {
	factory, ok := generatorFactories[name]
	if !ok {
		return nil, errors.Errorf("unknown generator '%s', supported generators are: %v", name, GetSupportedGenerators())
	}
	return factory(settings), nil
}
