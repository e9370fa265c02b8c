// Package credentials resolves remote authentication material for the
// updater.
//
// It exposes SourceProvider, which reads the configured username and secret
// sources (environment variables or files) fresh on every request, so rotated
// secrets take effect without restarting and nothing is cached between
// network calls.
package credentials
