// Package assets holds the datasets bundled into the binary.
package assets

import "embed"

// FS contains every file under data/. Dataset names resolve relative to
// that directory, so "cities.csv" is data/cities.csv.
//
//go:embed data
var FS embed.FS
