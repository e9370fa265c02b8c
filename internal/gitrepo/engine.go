package gitrepo

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"

	"github.com/repofleet/repofleet/internal/updater"
)

const openFailureTemplateConstant = "%w: %v"

// Engine opens on-disk git repositories for the updater. The zero value is
// usable; NewEngine exists for symmetry with other constructors.
type Engine struct{}

// NewEngine constructs a go-git backed repository engine.
func NewEngine() *Engine {
	return &Engine{}
}

// IsValidRepository reports whether the directory holds an openable git
// repository. The check is local and never returns an error.
func (engine *Engine) IsValidRepository(directoryPath string) bool {
	_, openError := gogit.PlainOpenWithOptions(directoryPath, &gogit.PlainOpenOptions{})
	return openError == nil
}

// Open returns a repository handle for the directory, wrapping failures in
// updater.ErrRepositoryOpen.
func (engine *Engine) Open(directoryPath string) (updater.Repository, error) {
	gitRepository, openError := gogit.PlainOpen(directoryPath)
	if openError != nil {
		return nil, fmt.Errorf(openFailureTemplateConstant, updater.ErrRepositoryOpen, openError)
	}

	return &repository{gitRepository: gitRepository, directory: directoryPath}, nil
}
