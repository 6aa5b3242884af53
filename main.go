package main

import (
	"net/http"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"storelink/applemusic"
	"storelink/bandcamp"
	appConfig "storelink/config"
	"storelink/handlers"
	"storelink/linker"
	"storelink/sentry"
	"storelink/spotify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	appConfig.NewConfig()

	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: "15:04:05",
	})
	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	sentry.Init()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := spotify.NewSpotifyClient(); err != nil {
		log.Fatalf("Error creating Spotify client: %v", err)
		return err
	}

	manager := &handlers.Manager{
		Resolver: spotify.NewResolver(),
		Tracks:   spotify.GetPlaylistTracks,
		Linker: linker.New(
			applemusic.NewClient(),
			bandcamp.NewClient(),
			appConfig.Config.Options.WorkerLimit,
		),
		Country: appConfig.Config.Options.Country,
	}

	router := gin.Default()
	router.Use(sentry.GetSentryGin())
	manager.Register(router)

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
