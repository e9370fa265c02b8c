package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const homeShortcutConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites a leading "~" path segment to the user's home
// directory. The home lookup runs at most once per expander and its result is
// reused for every expansion.
type HomeExpander struct {
	resolveHomeDirectory func() (string, error)
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom home
// directory lookup. A nil provider falls back to os.UserHomeDir.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{resolveHomeDirectory: sync.OnceValues(provider)}
}

// Expand resolves a leading tilde to the home directory. Paths without the
// shortcut, paths where the tilde names a user ("~alice"), and paths whose
// home lookup fails are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	homeDirectory, homeLookupError := expander.resolveHomeDirectory()
	if homeLookupError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, homeShortcutConstant)
	if len(remainder) == 0 {
		return homeDirectory
	}
	if remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return candidatePath
	}

	return filepath.Join(homeDirectory, remainder[1:])
}
