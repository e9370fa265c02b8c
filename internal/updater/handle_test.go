package updater_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repofleet/repofleet/internal/updater"
)

func TestNewRepositoryHandleSnapshotsHead(testInstance *testing.T) {
	repository := trackedRepository()

	handle, handleError := updater.NewRepositoryHandle(testFirstPackageDirectoryConstant, repository)
	require.NoError(testInstance, handleError)
	require.Equal(testInstance, testFirstPackageDirectoryConstant, handle.Directory)
	require.Equal(testInstance, testMainBranchNameConstant, handle.HeadBranchName)
	require.Equal(testInstance, testHeadCommitIdentifierConstant, handle.HeadCommitID)
	require.Same(testInstance, repository, handle.Repository())
}

func TestNewRepositoryHandleSnapshotDoesNotRefresh(testInstance *testing.T) {
	repository := trackedRepository()

	handle, handleError := updater.NewRepositoryHandle(testFirstPackageDirectoryConstant, repository)
	require.NoError(testInstance, handleError)

	repository.headSnapshot = updater.HeadSnapshot{
		BranchName: testFeatureBranchNameConstant,
		CommitID:   testUpdatedCommitIdentifierConstant,
	}

	require.Equal(testInstance, testMainBranchNameConstant, handle.HeadBranchName)
	require.Equal(testInstance, testHeadCommitIdentifierConstant, handle.HeadCommitID)

	currentHead, headError := handle.Repository().Head()
	require.NoError(testInstance, headError)
	require.Equal(testInstance, testUpdatedCommitIdentifierConstant, currentHead.CommitID)
}

func TestNewRepositoryHandleValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		directory     string
		repository    updater.Repository
		expectedError error
	}{
		{
			name:          "missing_directory",
			directory:     "",
			repository:    trackedRepository(),
			expectedError: updater.ErrHandleDirectoryRequired,
		},
		{
			name:          "missing_repository",
			directory:     testFirstPackageDirectoryConstant,
			repository:    nil,
			expectedError: updater.ErrHandleRepositoryMissing,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			handle, handleError := updater.NewRepositoryHandle(testCase.directory, testCase.repository)
			require.ErrorIs(testInstance, handleError, testCase.expectedError)
			require.Nil(testInstance, handle)
		})
	}
}

func TestNewRepositoryHandleHeadFailure(testInstance *testing.T) {
	repository := trackedRepository()
	repository.headError = errRepositoryUnavailable

	handle, handleError := updater.NewRepositoryHandle(testFirstPackageDirectoryConstant, repository)
	require.ErrorIs(testInstance, handleError, errRepositoryUnavailable)
	require.Nil(testInstance, handle)
}
