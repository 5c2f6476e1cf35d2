package server

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed webui/*
var uiFS embed.FS

// RegisterWebUI отдаёт консоль назначений (/ui/): список дисплеев и
// проектов, кнопки assign/forget поверх /api/devices* и /api/projects.
func (a *App) RegisterWebUI(prefix string) {
	if prefix == "" {
		prefix = "/ui/"
	}
	base := strings.TrimSuffix(prefix, "/")
	slash := base + "/"

	sub, err := fs.Sub(uiFS, "webui")
	if err != nil {
		// без webui в бинаре консоль бесполезна — падаем сразу
		panic(err)
	}

	// /ui -> /ui/
	a.Router.HandleFunc(base, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, slash, http.StatusFound)
	}).Methods(http.MethodGet)

	// /ui/ -> index.html без FileServer (иначе 301-луп)
	a.Router.HandleFunc(slash, func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("ui: index.html not embedded; ensure server/webui/* exists and rebuild"))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}).Methods(http.MethodGet)

	// остальная статика: /ui/<files>
	fileServer := http.StripPrefix(slash, http.FileServer(http.FS(sub)))
	a.Router.PathPrefix(slash).Handler(fileServer)

	// корень редиректим на консоль
	a.Router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, slash, http.StatusFound)
	})
}
