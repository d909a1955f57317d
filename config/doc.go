// Package config reads AWS shared configuration: the indentation-based
// key/value format used by ~/.aws/config and ~/.aws/credentials, plus the
// standard environment variables.
//
// Environment lookup is an injected strategy (see Environment) rather than
// process-wide state, so callers and tests control it per call.
package config
