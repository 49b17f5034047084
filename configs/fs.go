// Package configs embeds the default runtime files written by the installer.
package configs

import "embed"

//go:embed knowledge/*.json
var FS embed.FS
