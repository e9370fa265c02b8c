package pathutils

import (
	"path/filepath"
	"strings"
)

var nestedPathPrefixConstant = ".." + string(filepath.Separator)

// PackageRootSanitizer normalizes configured package root directories before
// discovery walks them.
type PackageRootSanitizer struct {
	homeExpander *HomeExpander
}

// NewPackageRootSanitizer constructs a sanitizer using the default home
// expander.
func NewPackageRootSanitizer() *PackageRootSanitizer {
	return NewPackageRootSanitizerWithExpander(nil)
}

// NewPackageRootSanitizerWithExpander constructs a sanitizer with a custom
// home expander. A nil expander falls back to the default.
func NewPackageRootSanitizerWithExpander(homeExpander *HomeExpander) *PackageRootSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &PackageRootSanitizer{homeExpander: resolvedExpander}
}

// Sanitize trims whitespace, expands home shortcuts, cleans each path, and
// drops blank, duplicate, and nested entries. A root nested beneath another
// root would rediscover the repositories its ancestor already contributes, so
// only the outermost of an overlapping pair survives. First-seen order is
// preserved.
func (sanitizer *PackageRootSanitizer) Sanitize(candidateRoots []string) []string {
	normalizedRoots := make([]string, 0, len(candidateRoots))
	for _, candidateRoot := range candidateRoots {
		trimmedRoot := strings.TrimSpace(candidateRoot)
		if len(trimmedRoot) == 0 {
			continue
		}
		normalizedRoots = append(normalizedRoots, filepath.Clean(sanitizer.homeExpander.Expand(trimmedRoot)))
	}

	return pruneNestedRoots(normalizedRoots)
}

// pruneNestedRoots removes duplicates and any root contained in another
// surviving root, in either direction of arrival order.
func pruneNestedRoots(normalizedRoots []string) []string {
	prunedRoots := make([]string, 0, len(normalizedRoots))

	for _, candidateRoot := range normalizedRoots {
		redundant := false
		for _, retainedRoot := range prunedRoots {
			if candidateRoot == retainedRoot || isContainedIn(retainedRoot, candidateRoot) {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}

		retainedRoots := prunedRoots[:0]
		for _, retainedRoot := range prunedRoots {
			if !isContainedIn(candidateRoot, retainedRoot) {
				retainedRoots = append(retainedRoots, retainedRoot)
			}
		}
		prunedRoots = append(retainedRoots, candidateRoot)
	}

	return prunedRoots
}

// isContainedIn reports whether childPath lives strictly beneath parentPath.
// Paths that cannot be related (one relative, one absolute) are unrelated.
func isContainedIn(parentPath string, childPath string) bool {
	relativePath, relativeError := filepath.Rel(parentPath, childPath)
	if relativeError != nil {
		return false
	}
	if relativePath == "." || relativePath == ".." {
		return false
	}
	return !strings.HasPrefix(relativePath, nestedPathPrefixConstant)
}
