// Package memory provides in-process implementations of the store
// interfaces. Data lives only as long as the server process.
package memory
