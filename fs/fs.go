package appfs

import "embed"

// FS embeds the database migrations and email templates so the server and
// ops CLI ship as a single binary.
//go:embed migrations assets
var FS embed.FS
