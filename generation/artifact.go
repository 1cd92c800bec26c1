package generation

// ArtifactKind describes the kind of a generated artifact.
type ArtifactKind int

const (
	// ArtifactSolution describes the solution manifest.
	ArtifactSolution ArtifactKind = iota
	// ArtifactProjectFile describes a per-assembly project file.
	ArtifactProjectFile
	// ArtifactWorkspace describes the IDE workspace file.
	ArtifactWorkspace
)

// artifactKindNames maps each ArtifactKind to its readable name.
var artifactKindNames = map[ArtifactKind]string{
	ArtifactSolution:    "solution",
	ArtifactProjectFile: "project",
	ArtifactWorkspace:   "workspace",
}

// artifactHookNames maps each ArtifactKind to the name post-processors are invoked with.
var artifactHookNames = map[ArtifactKind]string{
	ArtifactSolution:    "OnGeneratedSlnSolution",
	ArtifactProjectFile: "OnGeneratedCSProject",
	ArtifactWorkspace:   "OnGeneratedSublimeProject",
}

// String returns the readable name of the artifact kind.
func (k ArtifactKind) String() string {
	if name, ok := artifactKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// HookName returns the name post-processors receive for artifacts of this kind.
func (k ArtifactKind) HookName() string {
	return artifactHookNames[k]
}
