package credentials_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repofleet/repofleet/internal/credentials"
	"github.com/repofleet/repofleet/internal/updater"
)

const (
	testSubtestNameTemplateConstant = "%d_%s"

	testEnvironmentVariableNameConstant = "FLEET_UPDATE_TOKEN"
	testSecretValueConstant             = "token-value"
	testUsernameValueConstant           = "fleet-bot"
	testFilePathConstant                = "/etc/repofleet/token"
	testRemoteURLConstant               = "https://example.com/fleet/alpha.git"
)

var errFileUnreadable = errors.New("file unreadable")

func TestParseSource(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		sourceValue           string
		expectedConfiguration credentials.SourceConfiguration
		expectError           bool
	}{
		{
			name:                  "empty_value_disables_source",
			sourceValue:           "",
			expectedConfiguration: credentials.SourceConfiguration{Type: credentials.SourceTypeNone},
		},
		{
			name:        "environment_declaration",
			sourceValue: "env:" + testEnvironmentVariableNameConstant,
			expectedConfiguration: credentials.SourceConfiguration{
				Type:      credentials.SourceTypeEnvironment,
				Reference: testEnvironmentVariableNameConstant,
			},
		},
		{
			name:        "bare_value_is_environment_name",
			sourceValue: testEnvironmentVariableNameConstant,
			expectedConfiguration: credentials.SourceConfiguration{
				Type:      credentials.SourceTypeEnvironment,
				Reference: testEnvironmentVariableNameConstant,
			},
		},
		{
			name:        "file_declaration",
			sourceValue: "file:" + testFilePathConstant,
			expectedConfiguration: credentials.SourceConfiguration{
				Type:      credentials.SourceTypeFile,
				Reference: testFilePathConstant,
			},
		},
		{
			name:        "uppercase_type_is_accepted",
			sourceValue: "ENV:" + testEnvironmentVariableNameConstant,
			expectedConfiguration: credentials.SourceConfiguration{
				Type:      credentials.SourceTypeEnvironment,
				Reference: testEnvironmentVariableNameConstant,
			},
		},
		{
			name:        "environment_declaration_without_name_fails",
			sourceValue: "env:",
			expectError: true,
		},
		{
			name:        "file_declaration_without_path_fails",
			sourceValue: "file:",
			expectError: true,
		},
		{
			name:        "unknown_type_fails",
			sourceValue: "vault:secret/fleet",
			expectError: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			configuration, parseError := credentials.ParseSource(testCase.sourceValue)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedConfiguration, configuration)
		})
	}
}

func TestSourceProviderProvide(testInstance *testing.T) {
	environmentValues := map[string]string{
		testEnvironmentVariableNameConstant: testSecretValueConstant + "\n",
	}
	environmentLookup := func(key string) (string, bool) {
		value, found := environmentValues[key]
		return value, found
	}
	fileContents := map[string][]byte{
		testFilePathConstant: []byte(testUsernameValueConstant + "\n"),
	}
	fileReader := func(path string) ([]byte, error) {
		contents, found := fileContents[path]
		if !found {
			return nil, errFileUnreadable
		}
		return contents, nil
	}

	testCases := []struct {
		name                string
		usernameSourceValue string
		secretSourceValue   string
		expectedCredentials updater.Credentials
	}{
		{
			name:                "environment_secret_with_file_username",
			usernameSourceValue: "file:" + testFilePathConstant,
			secretSourceValue:   "env:" + testEnvironmentVariableNameConstant,
			expectedCredentials: updater.Credentials{
				Username: testUsernameValueConstant,
				Secret:   testSecretValueConstant,
			},
		},
		{
			name:                "disabled_sources_yield_anonymous_credentials",
			usernameSourceValue: "",
			secretSourceValue:   "",
			expectedCredentials: updater.Credentials{},
		},
		{
			name:                "missing_environment_variable_yields_empty_component",
			usernameSourceValue: "",
			secretSourceValue:   "env:FLEET_MISSING_TOKEN",
			expectedCredentials: updater.Credentials{},
		},
		{
			name:                "unreadable_file_yields_empty_component",
			usernameSourceValue: "file:/etc/repofleet/missing",
			secretSourceValue:   "env:" + testEnvironmentVariableNameConstant,
			expectedCredentials: updater.Credentials{Secret: testSecretValueConstant},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			provider, providerError := credentials.NewSourceProvider(testCase.usernameSourceValue, testCase.secretSourceValue, environmentLookup, fileReader)
			require.NoError(testInstance, providerError)

			providedCredentials := provider.Provide(testRemoteURLConstant)
			require.Equal(testInstance, testCase.expectedCredentials, providedCredentials)
		})
	}
}

func TestNewSourceProviderRejectsInvalidDeclarations(testInstance *testing.T) {
	provider, providerError := credentials.NewSourceProvider("vault:secret/fleet", "", nil, nil)
	require.Error(testInstance, providerError)
	require.Nil(testInstance, provider)
}

func TestSourceProviderResolvesFreshValues(testInstance *testing.T) {
	currentValue := "first-token"
	environmentLookup := func(key string) (string, bool) {
		return currentValue, true
	}

	provider, providerError := credentials.NewSourceProvider("", "env:"+testEnvironmentVariableNameConstant, environmentLookup, nil)
	require.NoError(testInstance, providerError)

	require.Equal(testInstance, "first-token", provider.Provide(testRemoteURLConstant).Secret)

	currentValue = "second-token"
	require.Equal(testInstance, "second-token", provider.Provide(testRemoteURLConstant).Secret)
}
