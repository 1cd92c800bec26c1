package types

// ResponseFileData holds the arguments parsed out of one compiler response file. It is parsed fresh on every sync
// and discarded once the project file is rendered.
type ResponseFileData struct {
	// Defines lists the preprocessor symbols defined by the response file.
	Defines []string

	// FullPathReferences lists resolved paths of the binaries referenced by the response file.
	FullPathReferences []string

	// Unsafe describes whether the response file enables unsafe code.
	Unsafe bool

	// OtherArguments lists every argument that is not a define, reference or unsafe switch, verbatim.
	OtherArguments []string

	// Errors lists problems found while parsing. Parsing continues past an error, so the other fields hold whatever
	// could be parsed.
	Errors []string
}
