// internal/adapters/httpapi/assets.go
package httpapi

import (
	"embed"
	"io/fs"
)

//go:embed web
var webFiles embed.FS

// Assets returns the embedded single-page UI rooted at web/.
func Assets() fs.FS {
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
