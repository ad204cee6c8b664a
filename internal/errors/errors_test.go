package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestFolioError_Error(t *testing.T) {
	err := &FolioError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "project not found: 4",
	}

	expected := "NOT_FOUND: project not found: 4"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("id is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "id is required" {
		t.Errorf("Message = %q, want %q", err.Message, "id is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("project", 42)

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Message != "project not found: 42" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["kind"] != "project" {
		t.Errorf("Details[kind] = %v, want %q", err.Details["kind"], "project")
	}
	if err.Details["id"] != 42 {
		t.Errorf("Details[id] = %v, want 42", err.Details["id"])
	}
}

func TestNewFileNotFound(t *testing.T) {
	err := NewFileNotFound("/tmp/site.yaml")

	if err.Code != ErrFileNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrFileNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["path"] != "/tmp/site.yaml" {
		t.Errorf("Details[path] = %v", err.Details["path"])
	}
}

func TestNewInvalidContent(t *testing.T) {
	issues := []string{"projects[0]: duplicate id 1", "experiences[2]: dangling project link 99"}
	err := NewInvalidContent(issues)

	if err.Code != ErrInvalidContent {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidContent)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
	want := "content document is invalid: projects[0]: duplicate id 1; experiences[2]: dangling project link 99"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	got, ok := err.Details["issues"].([]string)
	if !ok || len(got) != 2 {
		t.Errorf("Details[issues] = %v", err.Details["issues"])
	}
}

func TestNewInvalidContent_NoIssues(t *testing.T) {
	err := NewInvalidContent(nil)
	if err.Message != "content document is invalid" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("disk full"))
	if err.Code != ErrInternal || err.Status != 500 {
		t.Errorf("got %s/%d, want INTERNAL/500", err.Code, err.Status)
	}
	if err.Message != "disk full" {
		t.Errorf("Message = %q, want %q", err.Message, "disk full")
	}

	nilErr := NewInternal(nil)
	if nilErr.Message != "internal error" {
		t.Errorf("Message = %q, want %q", nilErr.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", NewNotFound("project", 1), ErrNotFound, true},
		{"different code", NewNotFound("project", 1), ErrInvalidRequest, false},
		{"wrapped", fmt.Errorf("load: %w", NewInvalidContent(nil)), ErrInvalidContent, true},
		{"plain error", stderrors.New("boom"), ErrInternal, false},
		{"nil", nil, ErrInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAs(t *testing.T) {
	orig := NewInvalidRequest("bad tab")
	if got := As(fmt.Errorf("wrap: %w", orig)); got != orig {
		t.Errorf("As() did not unwrap the original error")
	}

	got := As(stderrors.New("boom"))
	if got.Code != ErrInternal {
		t.Errorf("As(plain).Code = %q, want %q", got.Code, ErrInternal)
	}
}
