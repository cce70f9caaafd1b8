package ingest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"mealboard/internal/menu"
)

type fakeQueue struct {
	extract  *ExtractJob
	parse    *ParseJob
	rawText  map[int]string
	failures map[int]string
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{rawText: map[int]string{}, failures: map[int]string{}}
}

func (q *fakeQueue) FetchPendingExtract(ctx context.Context) (*ExtractJob, error) {
	job := q.extract
	q.extract = nil
	return job, nil
}

func (q *fakeQueue) SaveRawText(ctx context.Context, id int, text string) error {
	q.rawText[id] = text
	return nil
}

func (q *fakeQueue) FetchPendingParse(ctx context.Context) (*ParseJob, error) {
	job := q.parse
	q.parse = nil
	return job, nil
}

func (q *fakeQueue) MarkFailed(ctx context.Context, id int, reason string) error {
	q.failures[id] = reason
	return nil
}

type fakeStore struct {
	objects map[string]string
}

func (s *fakeStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	content, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

type fakeParser struct {
	doc   *menu.WeeklyMenu
	err   error
	calls int
	seen  string
}

func (p *fakeParser) ParseMenu(ctx context.Context, rawText string) (*menu.WeeklyMenu, error) {
	p.calls++
	p.seen = rawText
	return p.doc, p.err
}

type fakeResults struct {
	saved  map[int]*menu.WeeklyMenu
	failed map[int]string
}

func newFakeResults() *fakeResults {
	return &fakeResults{saved: map[int]*menu.WeeklyMenu{}, failed: map[int]string{}}
}

func (r *fakeResults) SaveParsedResult(ctx context.Context, hallID int, doc *menu.WeeklyMenu) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	r.saved[hallID] = doc
	return nil
}

func (r *fakeResults) MarkParsingFailed(ctx context.Context, hallID int, reason string) error {
	r.failed[hallID] = reason
	return nil
}

func validDoc() *menu.WeeklyMenu {
	return &menu.WeeklyMenu{Days: []menu.DaySchedule{{
		ID:      0,
		DayName: "Monday",
		Meals: []menu.MealSession{{
			TimeOfDay: menu.Lunch,
			StartTime: "11am",
			EndTime:   "1pm",
			Courses:   []menu.Course{{CourseType: "Entrée", FoodItems: "Pizza"}},
		}},
	}}}
}

func TestProcessOneExtractionTextFile(t *testing.T) {
	queue := newFakeQueue()
	queue.extract = &ExtractJob{ID: 5, HallID: 1, ObjectKey: "menus/1/a.txt", Filename: "week.txt"}
	store := &fakeStore{objects: map[string]string{"menus/1/a.txt": "Monday\nLunch\nPizza"}}

	svc := NewService(queue, store, &fakeParser{}, nil, newFakeResults())
	if err := svc.ProcessOneExtraction(context.Background()); err != nil {
		t.Fatalf("ProcessOneExtraction: %v", err)
	}

	if queue.rawText[5] != "Monday\nLunch\nPizza" {
		t.Errorf("raw text not saved: %q", queue.rawText[5])
	}
	if len(queue.failures) != 0 {
		t.Errorf("unexpected failures: %v", queue.failures)
	}
}

func TestProcessOneExtractionMissingObject(t *testing.T) {
	queue := newFakeQueue()
	queue.extract = &ExtractJob{ID: 5, HallID: 1, ObjectKey: "menus/1/gone.txt", Filename: "week.txt"}
	store := &fakeStore{objects: map[string]string{}}

	svc := NewService(queue, store, &fakeParser{}, nil, newFakeResults())
	// a bad object records a failure but does not error the worker loop
	if err := svc.ProcessOneExtraction(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if !strings.Contains(queue.failures[5], "download failed") {
		t.Errorf("failure not recorded: %v", queue.failures)
	}
}

func TestProcessOneExtractionNoJobs(t *testing.T) {
	svc := NewService(newFakeQueue(), &fakeStore{}, &fakeParser{}, nil, newFakeResults())
	if err := svc.ProcessOneExtraction(context.Background()); err != nil {
		t.Fatalf("idle poll must be quiet: %v", err)
	}
}

func TestProcessOneParsePrimarySucceeds(t *testing.T) {
	queue := newFakeQueue()
	queue.parse = &ParseJob{ID: 5, HallID: 2, RawText: "Monday\nLunch 11am - 1pm\nPizza"}
	primary := &fakeParser{doc: validDoc()}
	fallback := &fakeParser{}
	results := newFakeResults()

	svc := NewService(queue, &fakeStore{}, primary, fallback, results)
	if err := svc.ProcessOneParse(context.Background()); err != nil {
		t.Fatalf("ProcessOneParse: %v", err)
	}

	if results.saved[2] == nil {
		t.Fatal("parsed document not saved")
	}
	if fallback.calls != 0 {
		t.Error("fallback ran although primary succeeded")
	}
}

func TestProcessOneParseFallsBack(t *testing.T) {
	queue := newFakeQueue()
	queue.parse = &ParseJob{ID: 5, HallID: 2, RawText: "garbled"}
	primary := &fakeParser{err: errors.New("no day names recognized")}
	fallback := &fakeParser{doc: validDoc()}
	results := newFakeResults()

	svc := NewService(queue, &fakeStore{}, primary, fallback, results)
	if err := svc.ProcessOneParse(context.Background()); err != nil {
		t.Fatalf("ProcessOneParse: %v", err)
	}

	if fallback.calls != 1 {
		t.Fatal("fallback did not run")
	}
	if results.saved[2] == nil {
		t.Error("fallback document not saved")
	}
}

func TestProcessOneParseBothFail(t *testing.T) {
	queue := newFakeQueue()
	queue.parse = &ParseJob{ID: 5, HallID: 2, RawText: "garbled"}
	primary := &fakeParser{err: errors.New("no day names recognized")}
	fallback := &fakeParser{err: errors.New("model returned prose")}
	results := newFakeResults()

	svc := NewService(queue, &fakeStore{}, primary, fallback, results)
	if err := svc.ProcessOneParse(context.Background()); err != nil {
		t.Fatalf("ProcessOneParse: %v", err)
	}

	if results.failed[2] != "model returned prose" {
		t.Errorf("final failure not recorded: %v", results.failed)
	}
	if len(results.saved) != 0 {
		t.Error("document saved despite failures")
	}
}

func TestProcessOneParseCleansBeforeParsing(t *testing.T) {
	queue := newFakeQueue()
	queue.parse = &ParseJob{ID: 5, HallID: 2, RawText: "Page 1\nMonday\nLunch\nPizza"}
	primary := &fakeParser{doc: validDoc()}

	svc := NewService(queue, &fakeStore{}, primary, nil, newFakeResults())
	if err := svc.ProcessOneParse(context.Background()); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(primary.seen, "Page 1") {
		t.Errorf("parser saw uncleaned text: %q", primary.seen)
	}
}
