package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	transporthttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/repofleet/repofleet/internal/updater"
)

const (
	localTrackingRemoteNameConstant        = "."
	trackingReferenceTemplateConstant      = "refs/remotes/%s/%s"
	headReadFailureTemplateConstant        = "%w: %v"
	fetchFailureTemplateConstant           = "%w: %v"
	pullFailureTemplateConstant            = "%w: %v"
	comparisonFailureTemplateConstant      = "%w: %v"
	messageLineSeparatorConstant           = "\n"
	authenticationUsernameFallbackConstant = "git"
)

// repository adapts a go-git repository to the updater's backend contract.
// Instances are owned by a single worker at a time; methods are not safe for
// concurrent use.
type repository struct {
	gitRepository *gogit.Repository
	directory     string
}

// Head reports the currently checked-out branch and head commit. The commit
// message is reduced to its first line for logging.
func (repo *repository) Head() (updater.HeadSnapshot, error) {
	headReference, headError := repo.gitRepository.Head()
	if headError != nil {
		return updater.HeadSnapshot{}, fmt.Errorf(headReadFailureTemplateConstant, updater.ErrRepositoryOpen, headError)
	}

	snapshot := updater.HeadSnapshot{
		BranchName: headReference.Name().Short(),
		CommitID:   headReference.Hash().String(),
	}

	headCommit, commitError := repo.gitRepository.CommitObject(headReference.Hash())
	if commitError == nil {
		snapshot.CommitMessage = firstMessageLine(headCommit.Message)
	}

	return snapshot, nil
}

// ListRemotes returns the configured remotes sorted by name, using the first
// fetch URL of each remote.
func (repo *repository) ListRemotes() ([]updater.Remote, error) {
	gitRemotes, remotesError := repo.gitRepository.Remotes()
	if remotesError != nil {
		return nil, remotesError
	}

	remotes := make([]updater.Remote, 0, len(gitRemotes))
	for _, gitRemote := range gitRemotes {
		remoteConfiguration := gitRemote.Config()
		remoteURL := ""
		if len(remoteConfiguration.URLs) > 0 {
			remoteURL = remoteConfiguration.URLs[0]
		}
		remotes = append(remotes, updater.Remote{Name: remoteConfiguration.Name, URL: remoteURL})
	}

	sort.Slice(remotes, func(firstIndex int, secondIndex int) bool {
		return remotes[firstIndex].Name < remotes[secondIndex].Name
	})

	return remotes, nil
}

// ListBranches returns the local branches sorted by name. A branch whose
// configuration names a remote and merge reference carries the corresponding
// remote-tracking reference; branches tracking another local branch are
// reported as untracked.
func (repo *repository) ListBranches() ([]updater.Branch, error) {
	repositoryConfiguration, configurationError := repo.gitRepository.Config()
	if configurationError != nil {
		return nil, configurationError
	}

	branchIterator, branchesError := repo.gitRepository.Branches()
	if branchesError != nil {
		return nil, branchesError
	}
	defer branchIterator.Close()

	var branches []updater.Branch
	iterationError := branchIterator.ForEach(func(branchReference *plumbing.Reference) error {
		branchName := branchReference.Name().Short()
		branch := updater.Branch{Name: branchName}

		branchConfiguration, configured := repositoryConfiguration.Branches[branchName]
		if configured &&
			len(branchConfiguration.Remote) > 0 &&
			branchConfiguration.Remote != localTrackingRemoteNameConstant &&
			len(branchConfiguration.Merge) > 0 {
			branch.RemoteName = branchConfiguration.Remote
			branch.TrackingReference = fmt.Sprintf(trackingReferenceTemplateConstant, branchConfiguration.Remote, branchConfiguration.Merge.Short())
		}

		branches = append(branches, branch)
		return nil
	})
	if iterationError != nil {
		return nil, iterationError
	}

	sort.Slice(branches, func(firstIndex int, secondIndex int) bool {
		return branches[firstIndex].Name < branches[secondIndex].Name
	})

	return branches, nil
}

// Fetch updates the local remote-tracking references from the named remote.
// An already up-to-date remote is a success.
func (repo *repository) Fetch(executionContext context.Context, remoteName string, credentials updater.Credentials) error {
	fetchOptions := &gogit.FetchOptions{
		RemoteName: remoteName,
		Auth:       basicAuthentication(credentials),
	}

	fetchError := repo.gitRepository.FetchContext(executionContext, fetchOptions)
	if fetchError != nil && !errors.Is(fetchError, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf(fetchFailureTemplateConstant, updater.ErrFetch, fetchError)
	}

	return nil
}

// Pull fetches the current branch's upstream and fast-forwards the worktree.
// An already up-to-date branch is a success; a diverged branch that cannot
// fast-forward surfaces as a pull failure.
func (repo *repository) Pull(executionContext context.Context, credentials updater.Credentials) error {
	worktree, worktreeError := repo.gitRepository.Worktree()
	if worktreeError != nil {
		return fmt.Errorf(pullFailureTemplateConstant, updater.ErrPull, worktreeError)
	}

	pullOptions := &gogit.PullOptions{
		Auth: basicAuthentication(credentials),
	}

	pullError := worktree.PullContext(executionContext, pullOptions)
	if pullError != nil && !errors.Is(pullError, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf(pullFailureTemplateConstant, updater.ErrPull, pullError)
	}

	return nil
}

// Divergence counts the commits each side of a local/remote reference pair
// holds that the other side lacks.
func (repo *repository) Divergence(localReference string, remoteReference string) (updater.Divergence, error) {
	localCommit, localError := repo.resolveCommit(localReference)
	if localError != nil {
		return updater.Divergence{}, localError
	}

	remoteCommit, remoteError := repo.resolveCommit(remoteReference)
	if remoteError != nil {
		return updater.Divergence{}, remoteError
	}

	if localCommit.Hash == remoteCommit.Hash {
		return updater.Divergence{}, nil
	}

	localHistory, localHistoryError := reachableCommitHashes(localCommit)
	if localHistoryError != nil {
		return updater.Divergence{}, fmt.Errorf(comparisonFailureTemplateConstant, updater.ErrComparison, localHistoryError)
	}

	remoteHistory, remoteHistoryError := reachableCommitHashes(remoteCommit)
	if remoteHistoryError != nil {
		return updater.Divergence{}, fmt.Errorf(comparisonFailureTemplateConstant, updater.ErrComparison, remoteHistoryError)
	}

	aheadBy, aheadError := countExclusiveCommits(localCommit, remoteHistory)
	if aheadError != nil {
		return updater.Divergence{}, fmt.Errorf(comparisonFailureTemplateConstant, updater.ErrComparison, aheadError)
	}

	behindBy, behindError := countExclusiveCommits(remoteCommit, localHistory)
	if behindError != nil {
		return updater.Divergence{}, fmt.Errorf(comparisonFailureTemplateConstant, updater.ErrComparison, behindError)
	}

	return updater.Divergence{AheadBy: aheadBy, BehindBy: behindBy}, nil
}

func (repo *repository) resolveCommit(reference string) (*object.Commit, error) {
	resolvedHash, resolveError := repo.gitRepository.ResolveRevision(plumbing.Revision(reference))
	if resolveError != nil {
		return nil, fmt.Errorf(comparisonFailureTemplateConstant, updater.ErrComparison, resolveError)
	}

	resolvedCommit, commitError := repo.gitRepository.CommitObject(*resolvedHash)
	if commitError != nil {
		return nil, fmt.Errorf(comparisonFailureTemplateConstant, updater.ErrComparison, commitError)
	}

	return resolvedCommit, nil
}

// reachableCommitHashes walks the full ancestry of the commit and returns
// the visited hash set.
func reachableCommitHashes(startCommit *object.Commit) (map[plumbing.Hash]bool, error) {
	reachable := make(map[plumbing.Hash]bool)

	commitIterator := object.NewCommitPreorderIter(startCommit, nil, nil)
	defer commitIterator.Close()

	walkError := commitIterator.ForEach(func(visitedCommit *object.Commit) error {
		reachable[visitedCommit.Hash] = true
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	return reachable, nil
}

// countExclusiveCommits counts the commits reachable from the tip that do
// not belong to the excluded history.
func countExclusiveCommits(tipCommit *object.Commit, excludedHistory map[plumbing.Hash]bool) (int, error) {
	exclusiveCount := 0

	commitIterator := object.NewCommitPreorderIter(tipCommit, excludedHistory, nil)
	defer commitIterator.Close()

	walkError := commitIterator.ForEach(func(*object.Commit) error {
		exclusiveCount++
		return nil
	})
	if walkError != nil {
		return 0, walkError
	}

	return exclusiveCount, nil
}

func basicAuthentication(credentials updater.Credentials) *transporthttp.BasicAuth {
	if credentials.IsZero() {
		return nil
	}

	username := credentials.Username
	if len(username) == 0 {
		// HTTP basic authentication rejects empty usernames even when the
		// token alone carries the identity.
		username = authenticationUsernameFallbackConstant
	}

	return &transporthttp.BasicAuth{Username: username, Password: credentials.Secret}
}

func firstMessageLine(commitMessage string) string {
	trimmedMessage := strings.TrimSpace(commitMessage)
	if separatorIndex := strings.Index(trimmedMessage, messageLineSeparatorConstant); separatorIndex >= 0 {
		return strings.TrimSpace(trimmedMessage[:separatorIndex])
	}
	return trimmedMessage
}
