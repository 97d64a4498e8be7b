package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Serves a canned Open Library mirror so the api-server can run fully
// offline: point BOOKREC_OPENLIBRARY_URL at this process and both the
// search and work-detail endpoints keep answering.
//
//	GET /search.json           -> <dir>/search.json
//	GET /works/OL893415W.json  -> <dir>/works/OL893415W.json
func main() {
	addr := flag.String("addr", ":9000", "listen address")
	dir := flag.String("dir", "data/mirror", "mirror data directory")
	flag.Parse()

	http.HandleFunc("/search.json", serveMirrorFile(filepath.Join(*dir, "search.json")))

	worksDir := filepath.Join(*dir, "works")
	http.HandleFunc("/works/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/works/")
		if name == "" || strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
			http.NotFound(w, r)
			return
		}
		serveMirrorFile(filepath.Join(worksDir, name))(w, r)
	})

	log.Printf("mirror-server listening on %s, serving %s", *addr, *dir)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

// serveMirrorFile replays one JSON file. A missing file is a 404, the
// same answer the real API gives for an unknown work, so the client's
// best-effort detail lookup degrades the same way offline.
func serveMirrorFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "cannot read "+path+": "+err.Error(), http.StatusInternalServerError)
			return
		}
		// validate JSON so a bad file doesn't silently break the client
		var tmp any
		if err := json.Unmarshal(b, &tmp); err != nil {
			http.Error(w, path+" invalid JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}
