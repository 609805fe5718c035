package main

import (
	"os"

	"github.com/decorra/decorra/internal/app"
	log "github.com/sirupsen/logrus"
)

func init() {
	if level, ok := os.LookupEnv("LOG_LEVEL"); ok {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			log.Fatalf("unknown LOG_LEVEL %q: %v", level, err)
		}
		log.SetLevel(parsed)
		return
	}
	log.SetLevel(log.InfoLevel)
}

func main() {
	log.Info("Starting Decorra server")
	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("application setup failed: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
