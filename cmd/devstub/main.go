package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pantrypal/pantrypal/internal/devstub"
	"github.com/pantrypal/pantrypal/internal/logging"
)

func main() {

	addr := flag.String("addr", "127.0.0.1:8080", "listen address")
	ttl := flag.Duration("token-ttl", time.Hour, "issued token lifetime")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	srv := devstub.NewServer(devstub.Config{TokenTTL: *ttl}, devstub.WithServerLogger(logger))

	log.Printf("devstub backend listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		log.Fatalf("%v", err)
	}

}
