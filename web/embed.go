// Package web holds the static single-page front end served at /.
package web

import "embed"

//go:embed static
var Static embed.FS
