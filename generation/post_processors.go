package generation

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// PostProcessorFunc transforms the rendered text of an artifact before it reaches the write gate. hook is the hook
// name of the artifact kind, see ArtifactKind.HookName. Returning content unchanged passes it through.
type PostProcessorFunc func(hook string, path string, content string) string

// PostProcessor is a named PostProcessorFunc.
type PostProcessor struct {
	// Name identifies the post-processor.
	Name string

	// Process is the transform.
	Process PostProcessorFunc
}

// PostProcessors is an ordered list of post-processors. Each one receives the output of the previous one.
type PostProcessors struct {
	list []PostProcessor
}

// NewPostProcessors creates a list holding the given post-processors in order.
func NewPostProcessors(postProcessors ...PostProcessor) (*PostProcessors, error) {
	p := &PostProcessors{}
	for _, postProcessor := range postProcessors {
		if err := p.Register(postProcessor); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register appends a post-processor. Names must be unique and non-empty.
func (p *PostProcessors) Register(postProcessor PostProcessor) error {
	if postProcessor.Name == "" || postProcessor.Process == nil {
		return errors.Errorf("a post-processor requires a name and a transform")
	}
	for _, existing := range p.list {
		if existing.Name == postProcessor.Name {
			return errors.Errorf("post-processor '%s' is already registered", postProcessor.Name)
		}
	}
	p.list = append(p.list, postProcessor)
	return nil
}

// Names returns the names of the registered post-processors in order.
func (p *PostProcessors) Names() []string {
	names := make([]string, len(p.list))
	for i, postProcessor := range p.list {
		names[i] = postProcessor.Name
	}
	return names
}

// Apply runs every post-processor over content in registration order.
func (p *PostProcessors) Apply(kind ArtifactKind, path string, content string) string {
	if p == nil {
		return content
	}
	for _, postProcessor := range p.list {
		content = postProcessor.Process(kind.HookName(), path, content)
	}
	return content
}

// builtinPostProcessors maps the names of the built-in post-processors to their transforms.
var builtinPostProcessors = map[string]PostProcessorFunc{
	"enable-nullable":          insertProjectProperty("<Nullable>enable</Nullable>"),
	"treat-warnings-as-errors": insertProjectProperty("<TreatWarningsAsErrors>true</TreatWarningsAsErrors>"),
}

// GetSupportedPostProcessors returns the names of the built-in post-processors, sorted.
func GetSupportedPostProcessors() []string {
	names := make([]string, 0, len(builtinPostProcessors))
	for name := range builtinPostProcessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PostProcessorsFromNames creates a list of built-in post-processors in the given order.
func PostProcessorsFromNames(names []string) (*PostProcessors, error) {
	postProcessors := make([]PostProcessor, 0, len(names))
	for _, name := range names {
		process, ok := builtinPostProcessors[name]
		if !ok {
			return nil, errors.Errorf("unknown post-processor '%s', supported post-processors are: %s", name, strings.Join(GetSupportedPostProcessors(), ", "))
		}
		postProcessors = append(postProcessors, PostProcessor{Name: name, Process: process})
	}
	return NewPostProcessors(postProcessors...)
}

// insertProjectProperty returns a transform that adds a property line after the language version of project files.
// Other artifacts, and project files that already carry the property, pass through.
func insertProjectProperty(property string) PostProcessorFunc {
	return func(hook string, path string, content string) string {
		if hook != ArtifactProjectFile.HookName() || strings.Contains(content, property) {
			return content
		}

		const anchor = "</LangVersion>\r\n"
		index := strings.Index(content, anchor)
		if index == -1 {
			return content
		}
		index += len(anchor)
		return content[:index] + "    " + property + "\r\n" + content[index:]
	}
}
