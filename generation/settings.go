package generation

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/changes"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/config"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/generation/filter"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/logging"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils/pathutils"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Settings holds everything the generators of one project share: the host, the resolved configuration, the
// generation policy, the package cache and the sync state. Every sync and every policy change runs while holding
// the settings lock, so a sync always sees one consistent policy and assembly graph.
type Settings struct {
	// host is the host build system the graph is read from.
	host compilation.Host

	// projectRoot is the absolute directory of the host project.
	projectRoot string

	// projectName names the solution and workspace.
	projectName string

	// outputDirectory is the absolute directory artifacts are written to.
	outputDirectory string

	// rootNamespace is written to every project file.
	rootNamespace string

	// hostVersion gates version-dependent behavior. Nil targets the newest host.
	hostVersion *config.HostVersion

	// userExtensions is the host-configured extension allow-list.
	userExtensions []string

	// flags is the generation policy.
	flags config.ProjectGenerationFlag

	// packages memoizes package lookups. It is reset when the policy changes.
	packages *compilation.PackageCache

	// postProcessors transform rendered artifacts before they are written.
	postProcessors *PostProcessors

	// state is the memory of past syncs.
	state *SyncState

	// Events describes the event emitters of every generator sharing these settings.
	Events SyncEvents

	// lock serializes syncs and policy changes.
	lock sync.Mutex

	// logger describes the Settings' logger
	logger *logging.Logger
}

// NewSettings creates Settings from a generation config. ProjectRoot is made absolute against the working directory
// and TempDirectory against ProjectRoot. postProcessors may be nil.
func NewSettings(host compilation.Host, generationConfig config.GenerationConfig, postProcessors *PostProcessors) (*Settings, error) {
	if host == nil {
		return nil, errors.Errorf("a host is required to generate projects")
	}

	projectRoot, err := filepath.Abs(generationConfig.ProjectRoot)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	projectName := generationConfig.ProjectName
	if projectName == "" {
		projectName = filepath.Base(projectRoot)
	}
	if strings.TrimSpace(projectName) == "" {
		return nil, errors.Errorf("a project name is required to generate projects")
	}

	outputDirectory := generationConfig.TempDirectory
	if outputDirectory == "" {
		outputDirectory = config.DefaultTempDirectory
	}
	if !filepath.IsAbs(outputDirectory) {
		outputDirectory = filepath.Join(projectRoot, outputDirectory)
	}

	hostVersion, err := generationConfig.ParsedHostVersion()
	if err != nil {
		return nil, err
	}

	return &Settings{
		host:            host,
		projectRoot:     projectRoot,
		projectName:     projectName,
		outputDirectory: filepath.Clean(outputDirectory),
		rootNamespace:   generationConfig.RootNamespace,
		hostVersion:     hostVersion,
		userExtensions:  slices.Clone(generationConfig.UserExtensions),
		flags:           generationConfig.Flags,
		packages:        compilation.NewPackageCache(host),
		postProcessors:  postProcessors,
		state:           NewSyncState(),
		logger:          logging.GlobalLogger.NewSubLogger("module", logging.GENERATION_SERVICE),
	}, nil
}

// ProjectRoot returns the absolute directory of the host project.
func (s *Settings) ProjectRoot() string {
	return s.projectRoot
}

// ProjectName returns the name of the solution and workspace.
func (s *Settings) ProjectName() string {
	return s.projectName
}

// OutputDirectory returns the absolute directory artifacts are written to.
func (s *Settings) OutputDirectory() string {
	return s.outputDirectory
}

// State returns the sync state.
func (s *Settings) State() *SyncState {
	return s.state
}

// Flags returns the generation policy.
func (s *Settings) Flags() config.ProjectGenerationFlag {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.flags
}

// SetFlags replaces the generation policy. The package cache and everything the sync state derived from the old
// policy are dropped, so the next SyncIfNeeded performs a full sync.
func (s *Settings) SetFlags(flags config.ProjectGenerationFlag) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if flags == s.flags {
		return
	}
	s.flags = flags
	s.packages.Reset()
	s.state.Invalidate()
}

// ToggleFlag toggles one bit of the generation policy, see SetFlags. Returns the new policy.
func (s *Settings) ToggleFlag(flag config.ProjectGenerationFlag) config.ProjectGenerationFlag {
	flags := s.Flags().Toggle(flag)
	s.SetFlags(flags)
	return flags
}

// SetUserExtensions replaces the extension allow-list used from the next sync on. A different list makes the next
// SyncIfNeeded that needs a resync a full one.
func (s *Settings) SetUserExtensions(extensions []string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.userExtensions = slices.Clone(extensions)
}

// ResetPackageCache drops every cached package lookup and the cached package list.
func (s *Settings) ResetPackageCache() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.packages.Reset()
	s.state.InvalidatePackages()
}

// SelectedAssemblies returns the assemblies the current policy generates project files for.
func (s *Settings) SelectedAssemblies() []*types.Assembly {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.newFilter().SelectAssemblies(s.host)
}

// newFilter creates the MembershipFilter of one sync. The caller must hold the lock.
func (s *Settings) newFilter() *filter.MembershipFilter {
	return filter.NewMembershipFilter(s.packages, s.flags, s.hostVersion, s.userExtensions)
}

// pathNormalizer returns the PathNormalizer of the project.
func (s *Settings) pathNormalizer() pathutils.PathNormalizer {
	return pathutils.NewPathNormalizer(s.projectRoot)
}

// syncStats counts the outcome of the artifact writes of one sync.
type syncStats struct {
	written   int
	unchanged int
}

// add accumulates the counts of another sync.
func (s *syncStats) add(other syncStats) {
	s.written += other.written
	s.unchanged += other.unchanged
}

// writeArtifact runs the post-processors over content and passes the result through the write gate. The caller must
// hold the lock.
func (s *Settings) writeArtifact(kind ArtifactKind, path string, content string, stats *syncStats) error {
	content = s.postProcessors.Apply(kind, path, content)

	written, err := writeFileIfChanged(path, content, s.logger)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s artifact %s", kind, path)
	}
	s.state.RecordArtifact(kind, path)

	if !written {
		stats.unchanged++
		s.logger.Trace("Unchanged ", kind, " ", path)
		return s.Events.ArtifactUnchanged.Publish(ArtifactUnchangedEvent{Kind: kind, Path: path})
	}
	stats.written++
	s.logger.Debug("Wrote ", kind, " ", path)
	return s.Events.ArtifactWritten.Publish(ArtifactWrittenEvent{Kind: kind, Path: path})
}

// publishCompleted logs and publishes the outcome of a sync.
func (s *Settings) publishCompleted(generator string, plan changes.Plan, stats syncStats) error {
	if plan != changes.PlanNone {
		s.logger.Info("Synced ", generator, " (", plan, "): ", stats.written, " written, ", stats.unchanged, " unchanged")
	}
	return s.Events.SyncCompleted.Publish(SyncCompletedEvent{
		Generator: generator,
		Plan:      plan,
		Written:   stats.written,
		Unchanged: stats.unchanged,
	})
}
