package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/repofleet/repofleet/internal/updater"
)

const (
	sourceSeparatorConstant                    = ":"
	environmentSourceTypeValueConstant         = "env"
	fileSourceTypeValueConstant                = "file"
	environmentNameMissingErrorMessageConstant = "environment variable name must be provided"
	filePathMissingErrorMessageConstant        = "credential file path must be provided"
	unsupportedSourceTemplateConstant          = "unsupported credential source type %q"
)

// SourceType enumerates the supported credential retrieval mechanisms.
type SourceType string

// Credential source type enumerations.
const (
	SourceTypeNone        SourceType = ""
	SourceTypeEnvironment SourceType = SourceType(environmentSourceTypeValueConstant)
	SourceTypeFile        SourceType = SourceType(fileSourceTypeValueConstant)
)

// SourceConfiguration specifies where one credential component comes from.
type SourceConfiguration struct {
	Type      SourceType
	Reference string
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// ParseSource interprets textual credential source declarations such as
// "env:UPDATE_TOKEN" or "file:/etc/repofleet/token". A bare value is treated
// as an environment variable name; an empty value disables the source.
func ParseSource(sourceValue string) (SourceConfiguration, error) {
	trimmedValue := strings.TrimSpace(sourceValue)
	if len(trimmedValue) == 0 {
		return SourceConfiguration{Type: SourceTypeNone}, nil
	}

	components := strings.SplitN(trimmedValue, sourceSeparatorConstant, 2)
	if len(components) == 1 {
		return SourceConfiguration{Type: SourceTypeEnvironment, Reference: trimmedValue}, nil
	}

	sourceType := strings.ToLower(strings.TrimSpace(components[0]))
	reference := strings.TrimSpace(components[1])

	switch sourceType {
	case environmentSourceTypeValueConstant:
		if len(reference) == 0 {
			return SourceConfiguration{}, errors.New(environmentNameMissingErrorMessageConstant)
		}
		return SourceConfiguration{Type: SourceTypeEnvironment, Reference: reference}, nil
	case fileSourceTypeValueConstant:
		if len(reference) == 0 {
			return SourceConfiguration{}, errors.New(filePathMissingErrorMessageConstant)
		}
		return SourceConfiguration{Type: SourceTypeFile, Reference: reference}, nil
	default:
		return SourceConfiguration{}, fmt.Errorf(unsupportedSourceTemplateConstant, sourceType)
	}
}

// SourceProvider resolves credentials from configured sources at the moment
// each network operation requests them.
type SourceProvider struct {
	usernameSource    SourceConfiguration
	secretSource      SourceConfiguration
	environmentLookup EnvironmentLookup
	fileReader        FileReader
}

// NewSourceProvider parses the username and secret source declarations and
// builds a provider. Nil lookup and reader arguments default to the operating
// system implementations.
func NewSourceProvider(usernameSourceValue string, secretSourceValue string, environmentLookup EnvironmentLookup, fileReader FileReader) (*SourceProvider, error) {
	usernameSource, usernameParseError := ParseSource(usernameSourceValue)
	if usernameParseError != nil {
		return nil, usernameParseError
	}

	secretSource, secretParseError := ParseSource(secretSourceValue)
	if secretParseError != nil {
		return nil, secretParseError
	}

	resolvedEnvironmentLookup := environmentLookup
	if resolvedEnvironmentLookup == nil {
		resolvedEnvironmentLookup = os.LookupEnv
	}

	resolvedFileReader := fileReader
	if resolvedFileReader == nil {
		resolvedFileReader = os.ReadFile
	}

	return &SourceProvider{
		usernameSource:    usernameSource,
		secretSource:      secretSource,
		environmentLookup: resolvedEnvironmentLookup,
		fileReader:        resolvedFileReader,
	}, nil
}

// Provide resolves both credential components fresh for the given remote URL.
// A component whose source is disabled or unreadable resolves to empty, which
// downstream operations treat as anonymous access.
func (provider *SourceProvider) Provide(string) updater.Credentials {
	return updater.Credentials{
		Username: provider.resolveComponent(provider.usernameSource),
		Secret:   provider.resolveComponent(provider.secretSource),
	}
}

func (provider *SourceProvider) resolveComponent(source SourceConfiguration) string {
	switch source.Type {
	case SourceTypeEnvironment:
		value, found := provider.environmentLookup(source.Reference)
		if !found {
			return ""
		}
		return strings.TrimSpace(value)
	case SourceTypeFile:
		contents, readError := provider.fileReader(source.Reference)
		if readError != nil {
			return ""
		}
		return strings.TrimSpace(string(contents))
	default:
		return ""
	}
}
