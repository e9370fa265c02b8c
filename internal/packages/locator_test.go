package packages_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repofleet/repofleet/internal/packages"
	"github.com/repofleet/repofleet/internal/updater"
)

func TestFilesystemPackageLocatorListsSubdirectoriesSorted(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.Mkdir(filepath.Join(rootDirectory, "zeta"), 0o755))
	require.NoError(testInstance, os.Mkdir(filepath.Join(rootDirectory, "alpha"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, "notes.txt"), []byte("not a package"), 0o600))

	locator := packages.NewFilesystemPackageLocator()

	descriptors := locator.Locate([]string{rootDirectory})
	require.Equal(testInstance, []updater.PackageDescriptor{
		{Directory: filepath.Join(rootDirectory, "alpha")},
		{Directory: filepath.Join(rootDirectory, "zeta")},
	}, descriptors)
}

func TestFilesystemPackageLocatorPreservesRootOrder(testInstance *testing.T) {
	firstRootDirectory := testInstance.TempDir()
	secondRootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.Mkdir(filepath.Join(firstRootDirectory, "zeta"), 0o755))
	require.NoError(testInstance, os.Mkdir(filepath.Join(secondRootDirectory, "alpha"), 0o755))

	locator := packages.NewFilesystemPackageLocator()

	descriptors := locator.Locate([]string{firstRootDirectory, secondRootDirectory})
	require.Equal(testInstance, []updater.PackageDescriptor{
		{Directory: filepath.Join(firstRootDirectory, "zeta")},
		{Directory: filepath.Join(secondRootDirectory, "alpha")},
	}, descriptors)
}

func TestFilesystemPackageLocatorSkipsUnreadableRoots(testInstance *testing.T) {
	readableRootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.Mkdir(filepath.Join(readableRootDirectory, "alpha"), 0o755))

	missingRootDirectory := filepath.Join(testInstance.TempDir(), "does-not-exist")

	locator := packages.NewFilesystemPackageLocator()

	descriptors := locator.Locate([]string{missingRootDirectory, readableRootDirectory})
	require.Equal(testInstance, []updater.PackageDescriptor{
		{Directory: filepath.Join(readableRootDirectory, "alpha")},
	}, descriptors)
}

func TestFilesystemPackageLocatorEmptyRoots(testInstance *testing.T) {
	locator := packages.NewFilesystemPackageLocator()
	require.Empty(testInstance, locator.Locate(nil))
}
