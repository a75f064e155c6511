package batch

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartUpload(t *testing.T, userID, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if userID != "" {
		if err := w.WriteField("user_id", userID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	w.Close()
	return body, w.FormDataContentType()
}

func TestUploadBatchHandlerRequiresUserID(t *testing.T) {
	body, contentType := multipartUpload(t, "", "contributions.csv", "reg_no\nCS001\n")
	req := httptest.NewRequest(http.MethodPost, "/batch/contribution/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	UploadBatchHandler(nil, &ContributionKind)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadBatchHandlerRejectsUnknownSession(t *testing.T) {
	body, contentType := multipartUpload(t, "nobody", "contributions.csv", "reg_no\nCS001\n")
	req := httptest.NewRequest(http.MethodPost, "/batch/contribution/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	UploadBatchHandler(nil, &ContributionKind)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if success, _ := resp["success"].(bool); success {
		t.Error("error envelope must carry success=false")
	}
}

func TestApproveBatchHandlerRejectsBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/batch/loan/approve", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	ApproveBatchHandler(nil, &LoanKind)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRejectBatchHandlerRequiresBatchID(t *testing.T) {
	payload := `{"user_id": "u-1", "rejection_reason": "dup"}`
	req := httptest.NewRequest(http.MethodPost, "/batch/loan/reject", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	RejectBatchHandler(nil, &LoanKind)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
