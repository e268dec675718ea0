// Package meta resolves simulator configuration: YAML documents loaded over
// the abstract file system with ${env.KEY} expansion, loosely-typed override
// maps, and the legacy whitespace-separated integer format of the original
// simulator under meta/legacy.
package meta
