package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bytetube/internal/app"
)

func main() {
	addr := flag.String("addr", getEnv("BYTETUBE_ADDR", ":8080"), "server listen address")
	contentDir := flag.String("content", app.DefaultContentDir(), "local video directory")
	originURL := flag.String("origin", getEnv("BYTETUBE_ORIGIN_URL", ""), "origin URL template with one %s for the video id; overrides -content")
	dbPath := flag.String("db", app.DefaultDBPath(), "catalog database path")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := app.RunServer(ctx, app.ServerConfig{
		Addr:       *addr,
		ContentDir: *contentDir,
		OriginURL:  *originURL,
		DBPath:     *dbPath,
	})
	if err != nil {
		log.Fatalf("server start error: %v", err)
	}

	log.Printf("bytetube server listening on %s", handle.Addr())
	if err := handle.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
