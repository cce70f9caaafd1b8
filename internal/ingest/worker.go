package ingest

import (
	"context"
	"log"
	"time"
)

// RunExtractWorker polls for uploaded files until the context is
// cancelled.
func RunExtractWorker(ctx context.Context, service *Service, interval time.Duration) {
	log.Println("🧠 extract worker started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("extract worker stopped")
			return
		case <-ticker.C:
			if err := service.ProcessOneExtraction(ctx); err != nil {
				log.Printf("⚠️  extract worker: %v", err)
			}
		}
	}
}

// RunParseWorker polls for extracted text until the context is
// cancelled.
func RunParseWorker(ctx context.Context, service *Service, interval time.Duration) {
	log.Println("🧠 parse worker started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("parse worker stopped")
			return
		case <-ticker.C:
			if err := service.ProcessOneParse(ctx); err != nil {
				log.Printf("⚠️  parse worker: %v", err)
			}
		}
	}
}
