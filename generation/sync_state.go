package generation

import (
	"sync"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SyncState is the process-lifetime memory of past syncs. It is never persisted, so a new process starts cold and
// performs one full sync before any partial one.
type SyncState struct {
	// synced records the artifact kinds a full sync has completed for, with the user extension allow-list that sync
	// filtered with.
	synced map[ArtifactKind][]string

	// artifactPaths records the resolved paths of every artifact written or confirmed, per kind.
	artifactPaths map[ArtifactKind]map[string]struct{}

	// packages is the cached package list of the workspace, or nil if it must be recomputed.
	packages []*types.PackageInfo

	// lock guards every field of the state.
	lock sync.Mutex
}

// NewSyncState creates a cold SyncState.
func NewSyncState() *SyncState {
	return &SyncState{
		synced:        make(map[ArtifactKind][]string),
		artifactPaths: make(map[ArtifactKind]map[string]struct{}),
	}
}

// IsWarm returns true if a full sync of the given artifact kind has completed with the same user extension
// allow-list. A changed allow-list can add or remove items from any project file, so it needs a full sync again.
func (s *SyncState) IsWarm(kind ArtifactKind, extensions []string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	synced, ok := s.synced[kind]
	return ok && slices.Equal(synced, extensions)
}

// MarkSynced records a completed full sync of the given artifact kind with the given user extension allow-list.
func (s *SyncState) MarkSynced(kind ArtifactKind, extensions []string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.synced[kind] = slices.Clone(extensions)
}

// RecordArtifact records the resolved path of an artifact.
func (s *SyncState) RecordArtifact(kind ArtifactKind, path string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	paths, ok := s.artifactPaths[kind]
	if !ok {
		paths = make(map[string]struct{})
		s.artifactPaths[kind] = paths
	}
	paths[path] = struct{}{}
}

// ArtifactPaths returns the recorded paths of an artifact kind in lexical order.
func (s *SyncState) ArtifactPaths(kind ArtifactKind) []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	paths := maps.Keys(s.artifactPaths[kind])
	slices.Sort(paths)
	return paths
}

// Packages returns the cached package list. The boolean is false if nothing is cached.
func (s *SyncState) Packages() ([]*types.PackageInfo, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.packages, s.packages != nil
}

// SetPackages caches the package list.
func (s *SyncState) SetPackages(packages []*types.PackageInfo) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if packages == nil {
		packages = []*types.PackageInfo{}
	}
	s.packages = packages
}

// InvalidatePackages drops the cached package list.
func (s *SyncState) InvalidatePackages() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.packages = nil
}

// Extensions returns the user extension allow-list the last full sync of the given artifact kind filtered with. The
// boolean is false if the kind is cold.
func (s *SyncState) Extensions(kind ArtifactKind) ([]string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	extensions, ok := s.synced[kind]
	return slices.Clone(extensions), ok
}

// Invalidate drops everything derived from the generation policy: the cached package list and the warm state of
// every artifact kind. Recorded artifact paths are kept.
func (s *SyncState) Invalidate() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.packages = nil
	s.synced = make(map[ArtifactKind][]string)
}
