package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/openseis/waveclient/internal/mockdc"
)

// Command mockdc runs the directory/data-center simulator for local
// development: point waveclient's directory.address at it.
func main() {
	var (
		addr     = flag.String("addr", "127.0.0.1:6371", "listen address")
		baseURL  = flag.String("base-url", "", "externally visible base URL (default http://<addr>)")
		fixtures = flag.String("fixtures", "", "optional YAML fixtures file")
	)
	flag.Parse()

	f := mockdc.DefaultFixtures()
	if *fixtures != "" {
		var err error
		if f, err = mockdc.LoadFixtures(*fixtures); err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
	}

	srv := mockdc.New(f)
	base := *baseURL
	if base == "" {
		base = fmt.Sprintf("http://%s", *addr)
	}
	srv.SetBaseURL(base)

	log.Printf("mockdc serving on %s (base %s)", *addr, base)
	if err := http.ListenAndServe(*addr, srv.Engine()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
