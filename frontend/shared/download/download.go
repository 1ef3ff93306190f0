package download

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"opname/infrastructure/backend"
)

// Serve streams a backend download to the browser as an attachment and
// always closes the underlying body, even when copying fails midway.
func Serve(w http.ResponseWriter, dl *backend.Download, filename string) {
	defer func() {
		if err := dl.Close(); err != nil {
			slog.Error("close download stream", slog.String("filename", filename), slog.Any("err", err))
		}
	}()

	contentType := dl.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+sanitizeFilename(filename)+`"`)

	if _, err := io.Copy(w, dl.Body); err != nil {
		slog.Error("stream download", slog.String("filename", filename), slog.Any("err", err))
	}
}

// Filename builds the dated export name used across screens, e.g.
// stock_opname_Gudang A_3_2026-01-31.csv.
func Filename(prefix, location string, id int64, ext string) string {
	date := time.Now().Format("2006-01-02")
	if strings.TrimSpace(location) == "" {
		return fmt.Sprintf("%s_%d_%s.%s", prefix, id, date, ext)
	}
	return fmt.Sprintf("%s_%s_%d_%s.%s", prefix, location, id, date, ext)
}

// DatedFilename builds a dated name without an entity id, e.g.
// products_2026-01-31.csv.
func DatedFilename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("2006-01-02"), ext)
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(`"`, "", "\\", "_", "/", "_", "\r", "", "\n", "")
	return replacer.Replace(name)
}
