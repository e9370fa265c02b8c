package packages

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/repofleet/repofleet/internal/updater"
)

// FilesystemPackageLocator lists package candidates directly from disk.
type FilesystemPackageLocator struct{}

// NewFilesystemPackageLocator constructs a locator backed by os.ReadDir.
func NewFilesystemPackageLocator() *FilesystemPackageLocator {
	return &FilesystemPackageLocator{}
}

// Locate returns a descriptor for every immediate subdirectory of each root,
// in root order with subdirectories sorted by name. Unreadable roots are
// skipped; Locate never fails.
func (locator *FilesystemPackageLocator) Locate(rootDirectories []string) []updater.PackageDescriptor {
	var descriptors []updater.PackageDescriptor

	for _, rootDirectory := range rootDirectories {
		directoryEntries, readError := os.ReadDir(rootDirectory)
		if readError != nil {
			continue
		}

		candidateNames := make([]string, 0, len(directoryEntries))
		for _, directoryEntry := range directoryEntries {
			if !directoryEntry.IsDir() {
				continue
			}
			candidateNames = append(candidateNames, directoryEntry.Name())
		}
		sort.Strings(candidateNames)

		for _, candidateName := range candidateNames {
			descriptors = append(descriptors, updater.PackageDescriptor{
				Directory: filepath.Join(rootDirectory, candidateName),
			})
		}
	}

	return descriptors
}
