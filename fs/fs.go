// Package appfs embeds static app files so deployed binaries are self-contained.
package appfs

import "embed"

//go:embed migrations templates
var FS embed.FS
