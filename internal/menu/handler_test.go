package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeStorage struct {
	keys []string
	err  error
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://storage.test/" + key, nil
}

func setupMenuRouter(repo Repository, storage Storage, guard OwnerGuard) (*gin.Engine, *Service) {
	gin.SetMode(gin.TestMode)

	service := NewService(repo, storage)
	handler := NewHandler(service, guard)
	admin := NewAdminHandler(service)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	})
	r.POST("/menus/upload", handler.Upload)
	r.GET("/menus/:hall_id/status", handler.Status)
	r.POST("/menus/:hall_id/retry", handler.Retry)
	r.GET("/menus/:hall_id/week", handler.Week)
	r.PUT("/menus/:hall_id/week", handler.UpdateWeek)
	r.GET("/admin/menus/pending", admin.ListPending)
	r.POST("/admin/menus/:hall_id/approve", admin.Approve)
	r.POST("/admin/menus/:hall_id/reject", admin.Reject)
	return r, service
}

func multipartUpload(t *testing.T, hallID, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("hall_id", hallID); err != nil {
		t.Fatal(err)
	}
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(content))
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestUploadMenu(t *testing.T) {
	storage := &fakeStorage{}
	r, _ := setupMenuRouter(NewMemoryRepository(), storage, nil)

	body, contentType := multipartUpload(t, "1", "week.txt", "Monday\nLunch 11am - 1pm\nPizza")
	req := httptest.NewRequest(http.MethodPost, "/menus/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		UploadID int    `json:"upload_id"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != StatusUploaded {
		t.Errorf("expected status %s, got %s", StatusUploaded, resp.Status)
	}
	if len(storage.keys) != 1 || !strings.HasPrefix(storage.keys[0], "menus/1/") {
		t.Errorf("unexpected storage keys: %v", storage.keys)
	}
}

func TestUploadRejectsBadExtension(t *testing.T) {
	r, _ := setupMenuRouter(NewMemoryRepository(), &fakeStorage{}, nil)

	body, contentType := multipartUpload(t, "1", "menu.docx", "x")
	req := httptest.NewRequest(http.MethodPost, "/menus/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUploadDeniedForNonOwner(t *testing.T) {
	guard := func(c *gin.Context, hallID int, userID string) error {
		return errors.New("not the owner")
	}
	r, _ := setupMenuRouter(NewMemoryRepository(), &fakeStorage{}, guard)

	body, contentType := multipartUpload(t, "1", "week.txt", "x")
	req := httptest.NewRequest(http.MethodPost, "/menus/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestUploadLockedAfterApproval(t *testing.T) {
	repo := NewMemoryRepository()
	r, service := setupMenuRouter(repo, &fakeStorage{}, nil)

	ctx := context.Background()
	if _, _, err := service.UploadMenu(ctx, 1, "week.txt", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := service.SaveParsedResult(ctx, 1, sampleWeek()); err != nil {
		t.Fatal(err)
	}
	if err := service.Approve(ctx, 1, "admin-1"); err != nil {
		t.Fatal(err)
	}

	body, contentType := multipartUpload(t, "1", "week2.txt", "x")
	req := httptest.NewRequest(http.MethodPost, "/menus/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for approved menu, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStatusAndRetry(t *testing.T) {
	repo := NewMemoryRepository()
	r, service := setupMenuRouter(repo, &fakeStorage{}, nil)
	ctx := context.Background()

	// no upload yet
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus/1/status", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	if _, _, err := service.UploadMenu(ctx, 1, "week.txt", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := service.MarkParsingFailed(ctx, 1, "no days recognized"); err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus/1/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var st UploadStatus
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusFailed {
		t.Errorf("expected %s, got %s", StatusFailed, st.Status)
	}
	if st.Reason == nil || *st.Reason != "no days recognized" {
		t.Errorf("failure reason not surfaced: %v", st.Reason)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/menus/1/retry", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("retry: expected 200, got %d", w.Code)
	}

	st2, err := service.GetStatus(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if st2.Status != StatusUploaded {
		t.Errorf("retry did not reset status: %s", st2.Status)
	}

	// a second retry has nothing to do
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/menus/1/retry", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on double retry, got %d", w.Code)
	}
}

func TestWeekAndUpdateWeek(t *testing.T) {
	repo := NewMemoryRepository()
	r, service := setupMenuRouter(repo, &fakeStorage{}, nil)
	ctx := context.Background()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus/1/week", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before parsing, got %d", w.Code)
	}

	if _, _, err := service.UploadMenu(ctx, 1, "week.txt", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := service.SaveParsedResult(ctx, 1, sampleWeek()); err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menus/1/week", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var doc map[string]DaySchedule
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("week payload is not day-indexed: %v", err)
	}
	if doc["0"].DayName != "Monday" {
		t.Errorf("unexpected day 0: %+v", doc["0"])
	}

	// review edit
	edited := sampleWeek()
	edited.Days[0].Meals[0].Courses[0].FoodItems = "Roast Chicken, Rice Pilaf, Green Beans"
	body, _ := json.Marshal(edited)

	req := httptest.NewRequest(http.MethodPut, "/menus/1/week", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got, err := service.GetWeekly(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got.Days[0].Meals[0].Courses[0].FoodItems, "Green Beans") {
		t.Error("edit was not persisted")
	}

	// an invalid edit must be rejected
	bad := sampleWeek()
	bad.Days[0].Meals[0].TimeOfDay = "supper"
	body, _ = json.Marshal(bad)
	req = httptest.NewRequest(http.MethodPut, "/menus/1/week", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid edit: expected 400, got %d", w.Code)
	}
}

func TestAdminReviewQueue(t *testing.T) {
	repo := NewMemoryRepository()
	r, service := setupMenuRouter(repo, &fakeStorage{}, nil)
	ctx := context.Background()

	if _, _, err := service.UploadMenu(ctx, 1, "week.txt", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := service.SaveParsedResult(ctx, 1, sampleWeek()); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/menus/pending", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Pending []MenuUpload `json:"pending"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Pending) != 1 || resp.Pending[0].HallID != 1 {
		t.Fatalf("unexpected pending queue: %+v", resp.Pending)
	}

	// reject without a reason
	req := httptest.NewRequest(http.MethodPost, "/admin/menus/1/reject", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing reason, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/menus/1/approve", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// the queue drains after approval
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/menus/pending", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Pending) != 0 {
		t.Fatalf("queue not drained: %+v", resp.Pending)
	}

	// approving twice fails
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/menus/1/approve", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on double approve, got %d", w.Code)
	}
}
