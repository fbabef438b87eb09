// Package gamedata provides embedded battle data (species, moves, areas,
// items, abilities and the type chart) and the registries that serve it.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
