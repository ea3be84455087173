package app

import (
	"log"
	"net/http"
	"os"
	"time"

	"ss-quote/go_backend/internal/app/config"
	apphttp "ss-quote/go_backend/internal/app/http"
	"ss-quote/go_backend/internal/infra/settings"
)

func Run() {
	cfg := config.MustLoad()

	// no quote can ever be built without the template, so fail fast
	if _, err := os.Stat(cfg.TemplatePath); err != nil {
		log.Fatalf("quote template missing at %s: %v", cfg.TemplatePath, err)
	}

	st := settings.New(cfg.SettingsPath, cfg.DefaultSaveDir)

	router := apphttp.NewRouter(cfg, st)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
