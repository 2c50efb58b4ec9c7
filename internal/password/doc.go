// Package password implements the password acceptance pipeline: a registry of
// pluggable validators driven by configuration, and a hash controller that
// supports rotating hash schemes while keeping old hashes verifiable.
package password
