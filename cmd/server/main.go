package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robert008/flutter-yolo-open-kit/internal/yolo"
	"github.com/robert008/flutter-yolo-open-kit/internal/yolog"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func main() {
	defer yolog.Sync()
	log := yolog.S()

	configPath := os.Getenv("YOLO_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalw("failed to load config", "path", configPath, "error", err)
	}

	detector := yolo.New()
	if err := detector.Init(cfg.ModelPath); err != nil {
		log.Fatalw("failed to initialize detector", "model_path", cfg.ModelPath, "error", err)
	}
	defer detector.Release()

	if len(cfg.ClassNames) > 0 {
		detector.SetClassNames(cfg.ClassNames)
	}

	h := newHandler(detector, cfg)

	http.HandleFunc("/health", enableCORS(h.health))
	http.HandleFunc("/detect", enableCORS(h.detectFromUpload))
	http.HandleFunc("/detect/buffer", enableCORS(h.detectFromBuffer))
	http.Handle("/metrics", promhttp.Handler())

	port := cfg.Port
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	log.Infow("server starting",
		"port", port,
		"model_path", cfg.ModelPath,
	)
	log.Info("endpoints: GET /health, POST /detect (multipart), POST /detect/buffer (raw BGRA), GET /metrics")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}
