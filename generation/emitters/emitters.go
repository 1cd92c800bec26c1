// Package emitters renders generated artifacts. Every Render function is a pure function of its input, so equal
// inputs produce byte-identical text.
package emitters

// WindowsNewline terminates every line of solutions and project files, regardless of the host OS.
const WindowsNewline = "\r\n"

// File extensions of the generated artifacts.
const (
	SolutionExtension    = ".sln"
	ProjectFileExtension = ".csproj"
	WorkspaceExtension   = ".sublime-project"
)
