package prediction_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/logging"
	timex "github.com/ferdiebergado/pneumodetect/internal/pkg/time"
)

func TestMain(t *testing.M) {
	logging.SetupLogger("testing", "error", os.Stdout)

	code := t.Run()
	os.Exit(code)
}

var fixedNow = time.Date(2025, 6, 1, 20, 15, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.Server{MaxUploadBytes: 1024},
		Storage: config.Storage{Folder: "PneumoDetect"},
		History: config.History{
			Limit:         100,
			DisplayOffset: timex.Duration{Duration: 5 * time.Hour},
		},
	}
}

func newUploadRequest(t *testing.T, target, field string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "xray.png")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}

	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
