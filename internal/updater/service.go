package updater

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	backendMissingMessageConstant            = "repository backend not configured"
	packageLocatorMissingMessageConstant     = "package locator not configured"
	credentialProviderMissingMessageConstant = "credential provider not configured"

	defaultNetworkTimeoutConstant        = 60 * time.Second
	defaultMaximumConcurrentRepositories = 4

	homeOpenFailureMessageConstant       = "unable to open home repository"
	packageOpenFailureMessageConstant    = "unable to open package repository"
	remoteEnumerationFailureMessage      = "unable to enumerate remotes"
	branchEnumerationFailureMessage      = "unable to enumerate branches"
	remoteFetchFailureMessageConstant    = "fetch failed for remote"
	branchComparisonFailureMessage       = "unable to compare branch against tracked remote"
	branchBehindMessageConstant          = "branch is behind its tracked remote"
	updateStartingMessageConstant        = "updating repository"
	updateHeadReadFailureMessageConstant = "unable to read repository head"
	updateFailureMessageConstant         = "failed updating repository"
	updateSuccessMessageConstant         = "repository updated"

	logFieldDirectoryConstant         = "directory"
	logFieldRemoteNameConstant        = "remote"
	logFieldBranchNameConstant        = "branch"
	logFieldTrackingReferenceConstant = "tracking_reference"
	logFieldBehindByConstant          = "behind_by"
	logFieldHeadCommitConstant        = "head_commit"
	logFieldHeadMessageConstant       = "head_message"
)

// ErrBackendNotConfigured indicates the repository backend dependency was missing.
var ErrBackendNotConfigured = errors.New(backendMissingMessageConstant)

// ErrPackageLocatorNotConfigured indicates the package locator dependency was missing.
var ErrPackageLocatorNotConfigured = errors.New(packageLocatorMissingMessageConstant)

// ErrCredentialProviderNotConfigured indicates the credential provider dependency was missing.
var ErrCredentialProviderNotConfigured = errors.New(credentialProviderMissingMessageConstant)

// Dependencies enumerates the collaborators required by the updater service.
type Dependencies struct {
	Backend            Backend
	PackageLocator     PackageLocator
	CredentialProvider CredentialProvider
	Logger             *zap.Logger
}

// ServiceConfiguration tunes network and scheduling behavior.
type ServiceConfiguration struct {
	// NetworkTimeout bounds every individual fetch or pull; expiry is an
	// ordinary per-repository failure, never fatal to a batch.
	NetworkTimeout time.Duration
	// MaximumConcurrentRepositories bounds how many repositories the batch
	// runners process simultaneously.
	MaximumConcurrentRepositories int
}

// Service coordinates repository discovery, divergence detection, and updates.
type Service struct {
	backend            Backend
	packageLocator     PackageLocator
	credentialProvider CredentialProvider
	logger             *zap.Logger
	networkTimeout     time.Duration
	maximumConcurrent  int
}

// NewService constructs a Service from the provided dependencies and configuration.
func NewService(dependencies Dependencies, configuration ServiceConfiguration) (*Service, error) {
	if dependencies.Backend == nil {
		return nil, ErrBackendNotConfigured
	}
	if dependencies.PackageLocator == nil {
		return nil, ErrPackageLocatorNotConfigured
	}
	if dependencies.CredentialProvider == nil {
		return nil, ErrCredentialProviderNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	networkTimeout := configuration.NetworkTimeout
	if networkTimeout <= 0 {
		networkTimeout = defaultNetworkTimeoutConstant
	}

	maximumConcurrent := configuration.MaximumConcurrentRepositories
	if maximumConcurrent <= 0 {
		maximumConcurrent = defaultMaximumConcurrentRepositories
	}

	return &Service{
		backend:            dependencies.Backend,
		packageLocator:     dependencies.PackageLocator,
		credentialProvider: dependencies.CredentialProvider,
		logger:             logger,
		networkTimeout:     networkTimeout,
		maximumConcurrent:  maximumConcurrent,
	}, nil
}

// DiscoverAll returns the managed repository set: the home repository first
// when it opens successfully, followed by package repositories in locator
// order. The result is a transient snapshot recomputed on every call.
//
// Discovery performs no network operations. Candidates that fail the cheap
// validity check are silently dropped; candidates that pass the check but
// fail to open are logged and dropped.
func (service *Service) DiscoverAll(executionContext context.Context, homeDirectory string, packageRoots []string) []*RepositoryHandle {
	var handles []*RepositoryHandle

	trimmedHomeDirectory := strings.TrimSpace(homeDirectory)
	if len(trimmedHomeDirectory) > 0 {
		homeHandle, homeError := service.openHandle(trimmedHomeDirectory)
		if homeError != nil {
			service.logger.Error(homeOpenFailureMessageConstant,
				zap.String(logFieldDirectoryConstant, trimmedHomeDirectory),
				zap.Error(homeError),
			)
		} else {
			handles = append(handles, homeHandle)
		}
	}

	for _, descriptor := range service.packageLocator.Locate(packageRoots) {
		if executionContext != nil && executionContext.Err() != nil {
			break
		}

		if !service.backend.IsValidRepository(descriptor.Directory) {
			continue
		}

		packageHandle, openError := service.openHandle(descriptor.Directory)
		if openError != nil {
			service.logger.Error(packageOpenFailureMessageConstant,
				zap.String(logFieldDirectoryConstant, descriptor.Directory),
				zap.Error(openError),
			)
			continue
		}

		handles = append(handles, packageHandle)
	}

	return handles
}

// HasPendingUpdates reports whether any tracked local branch of the handle is
// behind its remote counterpart. Every remote is fetched best-effort first;
// individual fetch or comparison failures are logged and skipped so the
// remaining remotes and branches are still evaluated.
func (service *Service) HasPendingUpdates(executionContext context.Context, handle *RepositoryHandle) bool {
	repository := handle.Repository()

	remotes, remotesError := repository.ListRemotes()
	if remotesError != nil {
		service.logger.Error(remoteEnumerationFailureMessage,
			zap.String(logFieldDirectoryConstant, handle.Directory),
			zap.Error(remotesError),
		)
	}

	for _, remote := range remotes {
		fetchError := service.fetchRemote(executionContext, repository, remote)
		if fetchError != nil {
			service.logger.Error(remoteFetchFailureMessageConstant,
				zap.String(logFieldDirectoryConstant, handle.Directory),
				zap.String(logFieldRemoteNameConstant, remote.Name),
				zap.Error(fetchError),
			)
		}
	}

	branches, branchesError := repository.ListBranches()
	if branchesError != nil {
		service.logger.Error(branchEnumerationFailureMessage,
			zap.String(logFieldDirectoryConstant, handle.Directory),
			zap.Error(branchesError),
		)
		return false
	}

	for _, branch := range branches {
		if !branch.IsTracking() {
			continue
		}

		divergence, comparisonError := repository.Divergence(branch.Name, branch.TrackingReference)
		if comparisonError != nil {
			service.logger.Error(branchComparisonFailureMessage,
				zap.String(logFieldDirectoryConstant, handle.Directory),
				zap.String(logFieldBranchNameConstant, branch.Name),
				zap.String(logFieldTrackingReferenceConstant, branch.TrackingReference),
				zap.Error(comparisonError),
			)
			continue
		}

		if divergence.BehindBy > 0 {
			service.logger.Debug(branchBehindMessageConstant,
				zap.String(logFieldDirectoryConstant, handle.Directory),
				zap.String(logFieldBranchNameConstant, branch.Name),
				zap.Int(logFieldBehindByConstant, divergence.BehindBy),
			)
			return true
		}
	}

	return false
}

// Update pulls the repository forward to match its tracked upstream branch.
// It returns true on success and false on any failure; no error escapes. The
// repository is left in whatever state the backend's pull guarantees on
// failure.
func (service *Service) Update(executionContext context.Context, handle *RepositoryHandle) bool {
	repository := handle.Repository()

	previousHead, headError := repository.Head()
	if headError != nil {
		service.logger.Error(updateHeadReadFailureMessageConstant,
			zap.String(logFieldDirectoryConstant, handle.Directory),
			zap.Error(headError),
		)
		return false
	}

	service.logger.Debug(updateStartingMessageConstant,
		zap.String(logFieldDirectoryConstant, handle.Directory),
		zap.String(logFieldHeadCommitConstant, previousHead.CommitID),
		zap.String(logFieldHeadMessageConstant, previousHead.CommitMessage),
	)

	credentials := service.credentialProvider.Provide(service.pullRemoteURL(repository, previousHead.BranchName))

	pullContext, cancelPull := service.networkContext(executionContext)
	pullError := repository.Pull(pullContext, credentials)
	cancelPull()

	if pullError != nil {
		service.logger.Error(updateFailureMessageConstant,
			zap.String(logFieldDirectoryConstant, handle.Directory),
			zap.Error(pullError),
		)
		return false
	}

	updatedHead, updatedHeadError := repository.Head()
	if updatedHeadError != nil {
		updatedHead = previousHead
	}

	service.logger.Info(updateSuccessMessageConstant,
		zap.String(logFieldDirectoryConstant, handle.Directory),
		zap.String(logFieldHeadCommitConstant, updatedHead.CommitID),
		zap.String(logFieldHeadMessageConstant, updatedHead.CommitMessage),
	)

	return true
}

func (service *Service) openHandle(directoryPath string) (*RepositoryHandle, error) {
	repository, openError := service.backend.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	return NewRepositoryHandle(directoryPath, repository)
}

func (service *Service) fetchRemote(executionContext context.Context, repository Repository, remote Remote) error {
	credentials := service.credentialProvider.Provide(remote.URL)

	fetchContext, cancelFetch := service.networkContext(executionContext)
	defer cancelFetch()

	return repository.Fetch(fetchContext, remote.Name, credentials)
}

// pullRemoteURL resolves the URL whose credentials the pull will need: the
// remote tracked by the current branch when configured, otherwise the first
// remote, otherwise empty.
func (service *Service) pullRemoteURL(repository Repository, branchName string) string {
	remotes, remotesError := repository.ListRemotes()
	if remotesError != nil || len(remotes) == 0 {
		return ""
	}

	branches, branchesError := repository.ListBranches()
	if branchesError == nil {
		for _, branch := range branches {
			if branch.Name != branchName || len(branch.RemoteName) == 0 {
				continue
			}
			for _, remote := range remotes {
				if remote.Name == branch.RemoteName {
					return remote.URL
				}
			}
		}
	}

	return remotes[0].URL
}

func (service *Service) networkContext(executionContext context.Context) (context.Context, context.CancelFunc) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	return context.WithTimeout(executionContext, service.networkTimeout)
}
