package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	reportpdf "github.com/porticus-lab/go-report-pdf"
)

const (
	defaultMaxBody = 32 << 20 // 32 MB, room for four 2x chart captures

	// genericFailure is the only detail returned for unexpected failures.
	genericFailure = "Failed to generate report, please try again"
)

type reportRequest struct {
	Snapshot *reportpdf.Snapshot `json:"snapshot"`
	Charts   map[string]string   `json:"charts"`
	Kind     string              `json:"kind"`
	Extended bool                `json:"extended"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type reportHandler struct {
	generate GenerateFunc
	opts     []reportpdf.Option
	maxBody  int64
}

// CreateReport renders the posted snapshot and charts and streams the PDF
// back as a download.
func (h *reportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req reportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Snapshot == nil {
		writeError(w, http.StatusBadRequest, "snapshot is required")
		return
	}
	kind, err := reportpdf.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	charts, err := decodeCharts(req.Charts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := append([]reportpdf.Option{}, h.opts...)
	opts = append(opts, reportpdf.WithKind(kind))
	if req.Extended {
		opts = append(opts, reportpdf.WithExtendedTables())
	}

	res, err := h.generate(ctx, req.Snapshot, charts, opts...)
	switch {
	case errors.Is(err, reportpdf.ErrPrecondition):
		logger.Warn().Err(err).Msg("report rejected")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.Error().Err(err).Msg("report generation failed")
		writeError(w, http.StatusInternalServerError, genericFailure)
		return
	}

	logger.Info().
		Str("kind", kind.String()).
		Int("charts", charts.Len()).
		Int("pages", res.PageCount()).
		Int("bytes", res.Len()).
		Msg("report generated")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(res.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := res.WriteTo(w); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
	}
}

// decodeCharts turns base64 PNG payloads, optionally in data URL form, into
// a ChartImageSet. An empty payload leaves the chart absent. Malformed base64
// is a client error; bytes that are not a usable PNG are kept as a failed
// capture so the report shows a notice.
func decodeCharts(in map[string]string) (reportpdf.ChartImageSet, error) {
	var set reportpdf.ChartImageSet
	for key, payload := range in {
		name, err := reportpdf.ParseChartName(key)
		if err != nil {
			return set, err
		}
		if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
			payload = payload[i+len(";base64,"):]
		}
		if payload == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return set, fmt.Errorf("chart %s: invalid base64: %w", key, err)
		}
		img, err := reportpdf.DecodePNG(data)
		if err != nil {
			set.PutError(name, err)
			continue
		}
		set.Put(name, img)
	}
	return set, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
