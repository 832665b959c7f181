package server

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"
)

// liveReloadWrapper injects the reload script into successful HTML responses
// and disables caching so a reload always fetches fresh pages.
func liveReloadWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		iw := newInterceptingWriter()
		next.ServeHTTP(iw, r)

		for key, values := range iw.Header() {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		body := iw.body.Bytes()
		if iw.statusCode == http.StatusOK && isHTML(iw.Header().Get("Content-Type")) {
			body = bytes.Replace(body, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		}
		w.WriteHeader(iw.statusCode)
		w.Write(body)
	})
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/html"
}

type interceptingWriter struct {
	body       bytes.Buffer
	header     http.Header
	statusCode int
	wrote      bool
}

func newInterceptingWriter() *interceptingWriter {
	return &interceptingWriter{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (iw *interceptingWriter) Header() http.Header {
	return iw.header
}

func (iw *interceptingWriter) Write(b []byte) (int, error) {
	iw.wrote = true
	return iw.body.Write(b)
}

func (iw *interceptingWriter) WriteHeader(statusCode int) {
	if !iw.wrote {
		iw.statusCode = statusCode
		iw.wrote = true
	}
}

const liveReloadScript = `
<script>
  (function() {
    const socket = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection error. Please restart 'portfolio serve --dev'.");
    };
  })();
</script>
`
