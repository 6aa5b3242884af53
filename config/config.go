package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Spotify SpotifyConfig
	Options Options
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

type Options struct {
	Port           string
	Country        string // default storefront country for iTunes lookups
	WorkerLimit    int    // max concurrent per-track store lookups
	HTTPTimeoutSec int    // timeout applied to every outbound HTTP client
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		},
		Options: Options{
			Port:           os.Getenv("PORT"),
			Country:        getCountry(),
			WorkerLimit:    getWorkerLimit(),
			HTTPTimeoutSec: getHTTPTimeout(),
		},
	}

	Config = config
}

func getCountry() string {
	country := os.Getenv("ITUNES_COUNTRY")
	if len(country) != 2 {
		return "US"
	}
	return country
}

func getWorkerLimit() int {
	limitStr := os.Getenv("WORKER_LIMIT")
	if limitStr == "" {
		return 8
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 8
	}
	if limit > 64 {
		return 64 // keep fan-out polite towards third-party endpoints
	}
	return limit
}

func getHTTPTimeout() int {
	timeoutStr := os.Getenv("HTTP_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 10
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 10
	}
	if timeout > 60 {
		return 60
	}
	return timeout
}
