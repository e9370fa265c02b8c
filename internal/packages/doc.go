// Package packages locates candidate package directories for the updater.
//
// It exposes FilesystemPackageLocator, which treats every immediate
// subdirectory of a configured package root as a candidate package. Whether a
// candidate actually holds a repository is decided later by the updater's
// validity check.
package packages
