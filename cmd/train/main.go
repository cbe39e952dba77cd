package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"restobot/internal/config"
	"restobot/internal/dialogue"
	"restobot/pkg/log"
	"restobot/pkg/s3"
)

const (
	intentModelFile = "intent_model.json"
	hintModelFile   = "hint_model.json"
)

func main() {
	outDir := flag.String("out", "models", "directory the model artifacts are written to")
	upload := flag.String("upload", "", "optional s3://bucket/prefix the artifacts are uploaded to")
	withHints := flag.Bool("hints", true, "also train the advertising hint model from ADS_PATH")
	timeout := flag.Duration("timeout", 2*time.Minute, "deadline for reading and uploading artifacts")
	flag.Parse()

	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var bucket s3.ItfS3
	if *upload != "" || s3.IsURL(cfg.CatalogPath) || s3.IsURL(cfg.AdsPath) {
		if bucket, err = s3.New(); err != nil {
			logger.Fatalf("Failed to create S3 client: %v", err)
		}
	}

	// Models are trained from the source files only, never from previous artifacts.
	opts := dialogue.LoadOptions{CatalogPath: cfg.CatalogPath}
	if *withHints {
		opts.AdsPath = cfg.AdsPath
	}
	components, err := dialogue.LoadComponents(ctx, config.NewArtifactReader(bucket), opts)
	if err != nil {
		logger.Fatal(err)
	}

	models, err := dialogue.TrainModels(components, cfg.Lemmatizer)
	if err != nil {
		logger.Fatal(err)
	}
	logger.WithFields(logrus.Fields{
		"classes":  len(models.Intent.Classes),
		"features": models.Intent.Vectorizer.Size(),
		"accuracy": models.IntentAccuracy,
	}).Info("Intent model trained")

	artifacts := map[string][]byte{}
	if artifacts[intentModelFile], err = models.Intent.Marshal(); err != nil {
		logger.Fatal(err)
	}
	if models.Hint != nil {
		logger.WithFields(logrus.Fields{
			"classes":  len(models.Hint.Classes),
			"features": models.Hint.Vectorizer.Size(),
			"accuracy": models.HintAccuracy,
		}).Info("Advertising hint model trained")
		if artifacts[hintModelFile], err = models.Hint.Marshal(); err != nil {
			logger.Fatal(err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal(err)
	}
	for name, data := range artifacts {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Fatal(err)
		}
		logger.WithField("path", path).Info("Artifact written")
	}

	if *upload == "" {
		return
	}
	for name, data := range artifacts {
		target := strings.TrimSuffix(*upload, "/") + "/" + name
		bucketName, key, err := s3.ParseURL(target)
		if err != nil {
			logger.Fatal(err)
		}
		location, err := bucket.Upload(ctx, bucketName, key, bytes.NewReader(data))
		if err != nil {
			logger.Fatal(err)
		}
		logger.WithField("location", location).Info("Artifact uploaded")
	}
}
