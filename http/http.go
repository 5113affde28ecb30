package httpx

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"wasm-demo-server/asset"
	"wasm-demo-server/utils"
)

// Responder streams the file picked by rule for every request path.
type Responder struct {
	rule   asset.Rule
	fsys   billy.Filesystem
	logger *log.Logger
}

func NewResponder(rule asset.Rule, fsys billy.Filesystem, logger *log.Logger) *Responder {
	return &Responder{rule: rule, fsys: fsys, logger: logger}
}

// ServeHTTP commits a 200 before the file is opened. A missing or unreadable
// file leaves an empty or truncated body behind that status.
func (h *Responder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := requestTarget(r)
	sel := h.rule.Select(target)
	id := uuid.NewString()
	h.logf("%s %s %s -> %q id=%s", r.RemoteAddr, r.Method, target, sel.Name, id)

	if sel.ContentType != "" {
		w.Header().Set("Content-Type", sel.ContentType)
	}
	w.WriteHeader(http.StatusOK)

	f, err := h.fsys.Open(sel.Name)
	if err != nil {
		h.logf("open %q id=%s: %v", sel.Name, id, err)
		return
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		h.logf("stream %q id=%s: %v", sel.Name, id, err)
	}
}

// requestTarget is the request line target as sent, query included, so
// "/?v=1" is not "/".
func requestTarget(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}

func (h *Responder) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

// StartHTTPServer starts an HTTP server on addr (":8081" when empty) that
// serves rule's two files out of fsys. reusePort lets another instance bind
// the same address. It returns the listener so the caller can manage lifecycle.
func StartHTTPServer(addr string, rule asset.Rule, fsys billy.Filesystem, reusePort bool, logger *log.Logger) (net.Listener, error) {
	if addr == "" {
		addr = ":8081"
	}
	if fsys == nil {
		return nil, errors.New("invalid HTTP config: missing asset filesystem")
	}

	srv := &http.Server{Handler: NewResponder(rule, fsys, logger)}
	ln, err := utils.Listen("tcp", addr, reusePort)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	if logger != nil {
		logger.Printf("listening: %s serving %q and %q", utils.LocalURL(ln.Addr().String()), rule.Index, rule.Binary)
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
			if logger != nil {
				logger.Printf("http serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
