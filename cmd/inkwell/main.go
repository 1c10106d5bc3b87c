package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hollowaylabs/inkwell"
)

func main() {
	cfg := inkwell.SiteConfig{
		Name:        inkwell.EnvOr("SITE_NAME", "Inkwell"),
		URL:         inkwell.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: inkwell.EnvOr("SITE_DESCRIPTION", ""),
		Author:      inkwell.EnvOr("SITE_AUTHOR", ""),
		Handle:      inkwell.EnvOr("SITE_HANDLE", ""),
		Addr:        inkwell.EnvOr("ADDR", ":3000"),
		ContentDir:  inkwell.EnvOr("CONTENT_DIR", "content"),
		StaticDir:   inkwell.EnvOr("STATIC_DIR", "public"),
		OGCachePath: inkwell.EnvOr("OG_CACHE_PATH", "data/og-cache.db"),
	}

	app := inkwell.New(cfg)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		app.Close()
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
