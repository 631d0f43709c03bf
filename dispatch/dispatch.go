// Package dispatch maps request paths to files on disk and produces
// exactly one terminal response per path.
package dispatch

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	homeDocument = "index.html"

	plainType   = "text/plain"
	htmlType    = "text/html"
	defaultType = "application/octet-stream"
)

// contentTypes maps a file extension to its MIME type. Lookup is
// case-sensitive; unknown or missing extensions fall back to defaultType.
var contentTypes = map[string]string{
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
}

// Response is the terminal outcome of dispatching one request path.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Dispatcher resolves request paths against a static root on disk.
// The home document lives at <staticRoot>/index.html; assets live under
// the directory named by the asset prefix, e.g. /assets/ -> <staticRoot>/assets.
type Dispatcher struct {
	staticRoot  string
	assetPrefix string
	assetsDir   string
}

func New(staticRoot, assetPrefix string) *Dispatcher {
	return &Dispatcher{
		staticRoot:  staticRoot,
		assetPrefix: assetPrefix,
		assetsDir:   filepath.Join(staticRoot, strings.Trim(assetPrefix, "/")),
	}
}

// Handle resolves path to a Response. The request method is never
// consulted. Evaluation order: home document, asset prefix, catch-all.
func (d *Dispatcher) Handle(path string) Response {
	switch {
	case path == "/" || path == "/"+homeDocument:
		return d.serveHome()
	case strings.HasPrefix(path, d.assetPrefix):
		return d.serveAsset(strings.TrimPrefix(path, d.assetPrefix))
	default:
		return Response{
			Status:      http.StatusNotFound,
			ContentType: plainType,
			Body:        []byte("Page Not Found"),
		}
	}
}

func (d *Dispatcher) serveHome() Response {
	body, err := os.ReadFile(filepath.Join(d.staticRoot, homeDocument))
	if err != nil {
		log.Println(errors.Wrap(err, "read home document"))
		return Response{
			Status:      http.StatusInternalServerError,
			ContentType: plainType,
			Body:        []byte("Internal Server Error"),
		}
	}
	return Response{
		Status:      http.StatusOK,
		ContentType: htmlType,
		Body:        body,
	}
}

func (d *Dispatcher) serveAsset(name string) Response {
	body, err := os.ReadFile(filepath.Join(d.assetsDir, name))
	if err != nil {
		return Response{
			Status:      http.StatusNotFound,
			ContentType: plainType,
			Body:        []byte("Not Found"),
		}
	}
	return Response{
		Status:      http.StatusOK,
		ContentType: contentTypeFor(name),
		Body:        body,
	}
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypes[filepath.Ext(name)]; ok {
		return ct
	}
	return defaultType
}
