// Package constants centralizes numeric limits and file permissions shared
// across the CLI, the scan executor and the persistence layer.
package constants
