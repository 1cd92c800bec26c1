// Package identity derives the stable identifiers written into generated solutions and project files.
package identity

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// SolutionProjectTypeGUID marks a compiled-language project entry in a solution. External tooling recognizes the
// project kind by this exact value.
const SolutionProjectTypeGUID = "FAE04EC0-301F-11D3-BF4B-00C04F79EFBC"

// projectSalt is appended to every hashed project name.
const projectSalt = "salt"

// ForProject derives the identifier of a project from its name. The MD5 digest of name+"salt" is read as a GUID
// whose first three groups are little-endian, and formatted in lower case.
func ForProject(name string) string {
	digest := md5.Sum([]byte(name + projectSalt))

	// Swap the first three groups into big-endian order for canonical formatting
	digest[0], digest[1], digest[2], digest[3] = digest[3], digest[2], digest[1], digest[0]
	digest[4], digest[5] = digest[5], digest[4]
	digest[6], digest[7] = digest[7], digest[6]

	return uuid.UUID(digest).String()
}

// ForSolutionEntry returns the project type marker of a solution entry. It is the same for every project of the
// compiled language, regardless of the arguments.
func ForSolutionEntry(projectName string, primaryExtension string) string {
	return SolutionProjectTypeGUID
}

// Allocator derives identifiers for the assemblies of one project.
type Allocator struct {
	// ProjectName is prefixed to every assembly name before hashing.
	ProjectName string
}

// NewAllocator creates an Allocator for the given project name.
func NewAllocator(projectName string) Allocator {
	return Allocator{ProjectName: projectName}
}

// ForAssembly returns the project identifier of an assembly.
func (a Allocator) ForAssembly(assemblyName string) string {
	return ForProject(a.ProjectName + assemblyName)
}
