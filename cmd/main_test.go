package main

import (
	"articlesummarizer/internal/config"
	"articlesummarizer/internal/extractor"
	"articlesummarizer/internal/service"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func modelConfig(baseURL string) config.Config {
	return config.Config{
		ModelProvider: "huggingface",
		ModelBaseURL:  baseURL,
		ModelWarmup:   true,
	}
}

func modelLoaded(cfg config.Config) bool {
	sum := initSummarizer(context.Background(), cfg, slog.Default())
	svc := service.New(extractor.New(extractor.Config{}, slog.Default()), sum, slog.Default())

	return svc.ModelLoaded()
}

func TestInitSummarizerUnauthorizedModelIsNotLoaded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials in Authorization header"}`))
	}))
	defer srv.Close()

	if modelLoaded(modelConfig(srv.URL)) {
		t.Fatalf("expected model not loaded when warmup is rejected")
	}
}

func TestInitSummarizerUnreachableModelIsNotLoaded(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	if modelLoaded(modelConfig(baseURL)) {
		t.Fatalf("expected model not loaded when endpoint is unreachable")
	}
}

func TestInitSummarizerWorkingModelIsLoaded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"summary_text":"The council approved a new budget."}]`))
	}))
	defer srv.Close()

	if !modelLoaded(modelConfig(srv.URL)) {
		t.Fatalf("expected model loaded after successful warmup")
	}
}
