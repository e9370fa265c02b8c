package updater

import "context"

// Credentials carries the username and secret supplied to authenticated
// remote operations.
type Credentials struct {
	Username string
	Secret   string
}

// IsZero reports whether no credential material is present.
func (credentials Credentials) IsZero() bool {
	return len(credentials.Username) == 0 && len(credentials.Secret) == 0
}

// Remote identifies a configured remote of a repository.
type Remote struct {
	Name string
	URL  string
}

// Branch describes a local branch and, when configured, the remote-tracking
// reference it follows.
type Branch struct {
	Name              string
	RemoteName        string
	TrackingReference string
}

// IsTracking reports whether the branch follows a remote-tracking reference.
func (branch Branch) IsTracking() bool {
	return len(branch.TrackingReference) > 0
}

// Divergence captures the commit-graph distance between a local branch tip
// and its tracked remote tip. Only BehindBy drives update decisions; AheadBy
// is reported for completeness.
type Divergence struct {
	AheadBy  int
	BehindBy int
}

// HeadSnapshot records the checked-out branch and head commit of a
// repository at a single point in time.
type HeadSnapshot struct {
	BranchName    string
	CommitID      string
	CommitMessage string
}

// PackageDescriptor names a directory that may contain a package repository.
type PackageDescriptor struct {
	Directory string
}

// Repository exposes the per-repository operations required by the updater.
// Implementations are not assumed safe for concurrent use; callers serialize
// operations on a single repository.
type Repository interface {
	Head() (HeadSnapshot, error)
	ListRemotes() ([]Remote, error)
	ListBranches() ([]Branch, error)
	Fetch(executionContext context.Context, remoteName string, credentials Credentials) error
	Pull(executionContext context.Context, credentials Credentials) error
	Divergence(localReference string, remoteReference string) (Divergence, error)
}

// Backend opens on-disk repositories and answers cheap validity checks.
type Backend interface {
	IsValidRepository(directoryPath string) bool
	Open(directoryPath string) (Repository, error)
}

// PackageLocator produces candidate package descriptors beneath the provided
// root directories. Unreadable roots contribute nothing; the locator never
// fails.
type PackageLocator interface {
	Locate(rootDirectories []string) []PackageDescriptor
}

// CredentialProvider supplies credentials for a remote URL at the moment a
// network operation needs them. Providers are stateless per URL and are
// consulted fresh on every call.
type CredentialProvider interface {
	Provide(remoteURL string) Credentials
}
