package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
)

// The browser client ships inside the binary; /ui/ needs no separate
// asset deployment.
//
//go:embed static/*
var embeddedStatic embed.FS

func newStaticHandler() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(sub))
}
