package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stackify/marketplace-engine/internal/config"
	"github.com/stackify/marketplace-engine/internal/config/di"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketplaced")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	go health()

	zap.L().With(zap.String("port", config.Get().HealthPort)).Info("Marketplace Started")

	container.GetDaemon().Execute()
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
