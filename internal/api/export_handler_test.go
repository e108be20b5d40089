package api

import (
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/loopdeck/loopdeck-agent/internal/export"
)

func TestExportHandler_NoVideo(t *testing.T) {
	_, router := newTestConfig(t)

	rr := doRequest(t, router, http.MethodPost, "/export", export.Request{Format: export.FormatEDL})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestExportHandler_NoSegments(t *testing.T) {
	_, router := newTestConfig(t)
	doRequest(t, router, http.MethodPost, "/session/load", LoadRequest{Input: testVideoID})

	rr := doRequest(t, router, http.MethodPost, "/export", export.Request{Format: export.FormatEDL})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
}

func TestExportHandler_WritesEDL(t *testing.T) {
	_, router := newTestConfig(t)
	doRequest(t, router, http.MethodPost, "/session/load", LoadRequest{Input: testVideoID})
	doRequest(t, router, http.MethodPut, "/session/draft", DraftRequest{Label: "Riff", StartText: "00:10", EndText: "00:20"})
	doRequest(t, router, http.MethodPost, "/session/segments/", nil)

	rr := doRequest(t, router, http.MethodPost, "/export", export.Request{Title: "My Set", Format: export.FormatEDL})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	body := decodeJSONBody(t, rr)
	outputPath, _ := body["output_path"].(string)
	if outputPath == "" {
		t.Fatalf("missing output_path in %v", body)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(content), "* FROM CLIP NAME:  Riff") {
		t.Errorf("export content = %q", content)
	}
	if !strings.Contains(string(content), "* MEDIA PATH:  "+testLink) {
		t.Errorf("export missing watch URL: %q", content)
	}
}

func TestExportHandler_TitleFallsBackToVideoID(t *testing.T) {
	_, router := newTestConfig(t)
	doRequest(t, router, http.MethodPost, "/session/load", LoadRequest{Input: testVideoID})
	doRequest(t, router, http.MethodPut, "/session/draft", DraftRequest{StartText: "0", EndText: "5"})
	doRequest(t, router, http.MethodPost, "/session/segments/", nil)

	rr := doRequest(t, router, http.MethodPost, "/export", export.Request{Format: export.FormatChapters})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	body := decodeJSONBody(t, rr)
	if path, _ := body["output_path"].(string); !strings.Contains(path, testVideoID) {
		t.Errorf("output_path = %v", body["output_path"])
	}
}

func TestExportHandler_UnknownFormat(t *testing.T) {
	_, router := newTestConfig(t)
	doRequest(t, router, http.MethodPost, "/session/load", LoadRequest{Input: testVideoID})
	doRequest(t, router, http.MethodPut, "/session/draft", DraftRequest{StartText: "0", EndText: "5"})
	doRequest(t, router, http.MethodPost, "/session/segments/", nil)

	rr := doRequest(t, router, http.MethodPost, "/export", export.Request{Format: "srt"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}
