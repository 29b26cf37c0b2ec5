package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	if err := run(*port); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	// Static files are served relative to the working directory
	if _, err := os.Stat("static/index.html"); errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: static/index.html not found, run from the web/ directory to serve the UI")
	}

	jsonScenes, err := scene.ListJSONScenes()
	if err != nil {
		return fmt.Errorf("listing scene files: %w", err)
	}
	log.Printf("Whitted Raytracer Web Server: %d built-in scenes, %d scene files",
		len(scene.BuiltinNames()), len(jsonScenes))
	log.Printf("Visit http://localhost:%d to start rendering", port)

	return server.NewServer(port).Start()
}
