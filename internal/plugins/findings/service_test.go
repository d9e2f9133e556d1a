package findings

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

func TestCreate_NormalizesEventsAndSanitizes(t *testing.T) {
	repo := &mockFindingRepo{}
	svc := NewFindingService(repo)

	f, err := svc.Create(context.Background(), SaveFindingRequest{
		DescriptionShort: "Courts lagged legislatures",
		DescriptionLong:  `<p>See <a href="https://example.com" onclick="x()">both</a></p><script>alert(1)</script>`,
		EventIDs:         []int{7, 3, 7},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != 1 || len(repo.saved) != 1 {
		t.Fatalf("expected one saved finding, got %+v", repo.saved)
	}
	if !reflect.DeepEqual(f.EventIDs, []int{3, 7}) {
		t.Errorf("expected deduplicated sorted events, got %v", f.EventIDs)
	}
	if strings.Contains(f.DescriptionLong, "script") || strings.Contains(f.DescriptionLong, "onclick") {
		t.Errorf("expected sanitized description, got %q", f.DescriptionLong)
	}
	if !strings.Contains(f.DescriptionLong, `href="https://example.com"`) {
		t.Errorf("expected link kept, got %q", f.DescriptionLong)
	}
}

func TestCreate_Rejections(t *testing.T) {
	repo := &mockFindingRepo{
		missingEventsFn: func(ctx context.Context, ids []int) ([]int, error) {
			return []int{99}, nil
		},
	}
	svc := NewFindingService(repo)

	_, err := svc.Create(context.Background(), SaveFindingRequest{DescriptionShort: "  "})
	assertAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.Create(context.Background(), SaveFindingRequest{DescriptionShort: "ok", EventIDs: []int{1, 99}})
	assertAppError(t, err, http.StatusUnprocessableEntity)

	if len(repo.saved) != 0 {
		t.Errorf("expected nothing saved, got %+v", repo.saved)
	}
}

func TestUpdate_ReplacesEvents(t *testing.T) {
	repo := &mockFindingRepo{
		findByIDFn: func(ctx context.Context, id int) (*Finding, error) {
			return &Finding{ID: id, DescriptionShort: "old", EventIDs: []int{1, 2}}, nil
		},
	}
	svc := NewFindingService(repo)

	f, err := svc.Update(context.Background(), 4, SaveFindingRequest{DescriptionShort: "new"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != 4 || f.DescriptionShort != "new" || len(f.EventIDs) != 0 {
		t.Errorf("unexpected finding: %+v", f)
	}

	_, err = NewFindingService(&mockFindingRepo{}).Update(context.Background(), 4, SaveFindingRequest{DescriptionShort: "x"})
	assertAppError(t, err, http.StatusNotFound)
}
