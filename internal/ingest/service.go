package ingest

import (
	"context"
	"io"
	"log"
	"strings"

	"mealboard/internal/menu"
)

// Queue is the job-claiming side of the upload table.
type Queue interface {
	FetchPendingExtract(ctx context.Context) (*ExtractJob, error)
	SaveRawText(ctx context.Context, id int, text string) error
	FetchPendingParse(ctx context.Context) (*ParseJob, error)
	MarkFailed(ctx context.Context, id int, reason string) error
}

// ObjectStore downloads uploaded menu files.
type ObjectStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// Results receives parser output. The menu service implements it and
// validates documents before they are stored.
type Results interface {
	SaveParsedResult(ctx context.Context, hallID int, doc *menu.WeeklyMenu) error
	MarkParsingFailed(ctx context.Context, hallID int, reason string) error
}

type Service struct {
	queue    Queue
	store    ObjectStore
	pre      *Preprocessor
	primary  menu.Parser
	fallback menu.Parser
	results  Results
}

func NewService(queue Queue, store ObjectStore, primary, fallback menu.Parser, results Results) *Service {
	return &Service{
		queue:    queue,
		store:    store,
		pre:      NewPreprocessor(),
		primary:  primary,
		fallback: fallback,
		results:  results,
	}
}

// ProcessOneExtraction claims ONE uploaded file, extracts its text and
// hands the row to the parse worker. Per-job failures are recorded on
// the row and never returned — a bad file must not block the queue.
func (s *Service) ProcessOneExtraction(ctx context.Context) error {
	job, err := s.queue.FetchPendingExtract(ctx)
	if err != nil {
		return err
	}
	if job == nil {
		// no pending jobs is NOT an error
		return nil
	}

	body, err := s.store.Download(ctx, job.ObjectKey)
	if err != nil {
		log.Printf("EXTRACT_FAILED id=%d key=%s err=%v", job.ID, job.ObjectKey, err)
		_ = s.queue.MarkFailed(ctx, job.ID, "download failed: "+err.Error())
		return nil
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		_ = s.queue.MarkFailed(ctx, job.ID, "read failed: "+err.Error())
		return nil
	}

	text, err := ExtractText(job.Filename, data)
	if err != nil {
		log.Printf("EXTRACT_FAILED id=%d file=%s err=%v", job.ID, job.Filename, err)
		_ = s.queue.MarkFailed(ctx, job.ID, "text extraction failed: "+err.Error())
		return nil
	}
	if strings.TrimSpace(text) == "" {
		_ = s.queue.MarkFailed(ctx, job.ID, "no text found in file")
		return nil
	}

	log.Printf("EXTRACT_DONE id=%d file=%s chars=%d", job.ID, job.Filename, len(text))
	return s.queue.SaveRawText(ctx, job.ID, text)
}

// ProcessOneParse claims ONE row with extracted text and runs the menu
// parsers over it. The fallback parser only runs when the primary fails.
func (s *Service) ProcessOneParse(ctx context.Context) error {
	job, err := s.queue.FetchPendingParse(ctx)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}

	text := s.pre.Clean(job.RawText)

	doc, err := s.primary.ParseMenu(ctx, text)
	if err != nil && s.fallback != nil {
		log.Printf("PARSE_FALLBACK id=%d hall=%d primary_err=%v", job.ID, job.HallID, err)
		doc, err = s.fallback.ParseMenu(ctx, text)
	}
	if err != nil {
		log.Printf("PARSE_FAILED id=%d hall=%d err=%v", job.ID, job.HallID, err)
		return s.results.MarkParsingFailed(ctx, job.HallID, err.Error())
	}

	if err := s.results.SaveParsedResult(ctx, job.HallID, doc); err != nil {
		log.Printf("PARSE_REJECTED id=%d hall=%d err=%v", job.ID, job.HallID, err)
		return s.results.MarkParsingFailed(ctx, job.HallID, err.Error())
	}

	log.Printf("PARSE_DONE id=%d hall=%d days=%d", job.ID, job.HallID, len(doc.Days))
	return nil
}
