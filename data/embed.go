// Package data embeds the shipped world content.
package data

import "embed"

//go:embed *.lua
var files embed.FS

// FS returns the embedded world content for the loader.
func FS() embed.FS {
	return files
}
