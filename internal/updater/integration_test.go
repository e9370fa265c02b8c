package updater_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/repofleet/repofleet/internal/gitrepo"
	"github.com/repofleet/repofleet/internal/packages"
	"github.com/repofleet/repofleet/internal/updater"
)

const (
	integrationAuthorNameConstant    = "Repo Fleet"
	integrationAuthorEmailConstant   = "fleet@example.com"
	integrationFileNameTemplate      = "note-%d.txt"
	integrationCommitMessageTemplate = "note %d"
	integrationUploadPackConstant    = "git-upload-pack"
)

func requireUploadPack(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(integrationUploadPackConstant); lookupError != nil {
		testInstance.Skip("git-upload-pack binary not available")
	}
}

func commitFile(testInstance *testing.T, gitRepository *gogit.Repository, directory string, fileNumber int) {
	testInstance.Helper()

	worktree, worktreeError := gitRepository.Worktree()
	require.NoError(testInstance, worktreeError)

	fileName := fmt.Sprintf(integrationFileNameTemplate, fileNumber)
	require.NoError(testInstance, os.WriteFile(filepath.Join(directory, fileName), []byte(fileName), 0o600))

	_, addError := worktree.Add(fileName)
	require.NoError(testInstance, addError)

	_, commitError := worktree.Commit(fmt.Sprintf(integrationCommitMessageTemplate, fileNumber), &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  integrationAuthorNameConstant,
			Email: integrationAuthorEmailConstant,
			When:  time.Now(),
		},
	})
	require.NoError(testInstance, commitError)
}

func anonymousCredentialProvider() updater.CredentialProvider {
	return credentialProviderFunc(func(string) updater.Credentials {
		return updater.Credentials{}
	})
}

type credentialProviderFunc func(remoteURL string) updater.Credentials

func (provider credentialProviderFunc) Provide(remoteURL string) updater.Credentials {
	return provider(remoteURL)
}

// The full cycle against real repositories: discover a cloned package, detect
// that its upstream moved, pull it forward, and observe a clean second status.
func TestServiceDetectsAndAppliesUpstreamUpdates(testInstance *testing.T) {
	requireUploadPack(testInstance)

	upstreamDirectory := testInstance.TempDir()
	upstreamRepository, initError := gogit.PlainInit(upstreamDirectory, false)
	require.NoError(testInstance, initError)
	commitFile(testInstance, upstreamRepository, upstreamDirectory, 1)

	packagesRoot := testInstance.TempDir()
	packageDirectory := filepath.Join(packagesRoot, "alpha")
	_, cloneError := gogit.PlainClone(packageDirectory, false, &gogit.CloneOptions{URL: upstreamDirectory})
	require.NoError(testInstance, cloneError)

	commitFile(testInstance, upstreamRepository, upstreamDirectory, 2)

	service, serviceError := updater.NewService(updater.Dependencies{
		Backend:            gitrepo.NewEngine(),
		PackageLocator:     packages.NewFilesystemPackageLocator(),
		CredentialProvider: anonymousCredentialProvider(),
		Logger:             zap.NewNop(),
	}, updater.ServiceConfiguration{})
	require.NoError(testInstance, serviceError)

	handles := service.DiscoverAll(context.Background(), "", []string{packagesRoot})
	require.Len(testInstance, handles, 1)
	require.Equal(testInstance, packageDirectory, handles[0].Directory)

	require.True(testInstance, service.HasPendingUpdates(context.Background(), handles[0]))
	require.True(testInstance, service.Update(context.Background(), handles[0]))
	require.False(testInstance, service.HasPendingUpdates(context.Background(), handles[0]))

	upstreamHead, upstreamHeadError := upstreamRepository.Head()
	require.NoError(testInstance, upstreamHeadError)

	updatedHead, updatedHeadError := handles[0].Repository().Head()
	require.NoError(testInstance, updatedHeadError)
	require.Equal(testInstance, upstreamHead.Hash().String(), updatedHead.CommitID)
}
