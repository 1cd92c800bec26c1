package generation

import (
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/events"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/changes"
)

// SyncEvents defines the event emitters of a generator. They are shared by every generator created from the same
// Settings.
type SyncEvents struct {
	// ArtifactWritten emits events when an artifact was written to disk.
	ArtifactWritten events.EventEmitter[ArtifactWrittenEvent]

	// ArtifactUnchanged emits events when the write gate found an artifact up to date and skipped its write.
	ArtifactUnchanged events.EventEmitter[ArtifactUnchangedEvent]

	// SyncCompleted emits events when a generator finished a sync.
	SyncCompleted events.EventEmitter[SyncCompletedEvent]
}

// ArtifactWrittenEvent describes an artifact that was written.
type ArtifactWrittenEvent struct {
	// Kind is the kind of the artifact.
	Kind ArtifactKind

	// Path is the path the artifact was written to.
	Path string
}

// ArtifactUnchangedEvent describes an artifact whose on-disk content already matched.
type ArtifactUnchangedEvent struct {
	// Kind is the kind of the artifact.
	Kind ArtifactKind

	// Path is the path of the artifact.
	Path string
}

// SyncCompletedEvent describes a finished sync.
type SyncCompletedEvent struct {
	// Generator is the name of the generator that synced.
	Generator string

	// Plan describes the extent of the sync.
	Plan changes.Plan

	// Written is the number of artifacts written.
	Written int

	// Unchanged is the number of artifacts left untouched by the write gate.
	Unchanged int
}
