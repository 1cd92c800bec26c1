package types

// AssembliesType selects which set of assemblies the host enumerates.
type AssembliesType int

const (
	// AssembliesTypeEditor selects the assemblies compiled for the editor, with editor defines.
	AssembliesTypeEditor AssembliesType = iota
	// AssembliesTypePlayer selects the assemblies compiled for a player build, with player defines.
	AssembliesTypePlayer
)

// String returns a human-readable name of the assembly set.
func (t AssembliesType) String() string {
	switch t {
	case AssembliesTypeEditor:
		return "editor"
	case AssembliesTypePlayer:
		return "player"
	default:
		return "unknown"
	}
}
