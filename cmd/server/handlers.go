package main

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/robert008/flutter-yolo-open-kit/internal/result"
	"github.com/robert008/flutter-yolo-open-kit/internal/yolo"
	"github.com/robert008/flutter-yolo-open-kit/internal/yolog"
)

// handler holds the single shared detector and the config-provided
// default thresholds: one DetectorState per process.
type handler struct {
	detector *yolo.DetectorState
	defConf  float32
	defIoU   float32
}

func newHandler(d *yolo.DetectorState, cfg Config) *handler {
	return &handler{detector: d, defConf: cfg.DefaultConfThreshold, defIoU: cfg.DefaultIoUThreshold}
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := "ok"
	if !h.detector.IsInitialized() {
		status = "not_initialized"
	}
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// detectFromUpload accepts a multipart "image" field and runs detection
// on the decoded image via a temp file so the full path-based ingress
// (and its IMAGE_LOAD_FAILED handling) is exercised end to end.
func (h *handler) detectFromUpload(w http.ResponseWriter, r *http.Request) {
	log := yolog.S().With("request_id", uuid.NewString(), "endpoint", "detect")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "no image file provided, use 'image' as the form field name", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "yolo-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		http.Error(w, "failed to buffer upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		http.Error(w, "failed to buffer upload", http.StatusInternalServerError)
		return
	}

	conf, iou := h.thresholdsFromQuery(r)

	res := h.detector.DetectFromPath(tmp.Name(), conf, iou)
	h.observe("detect", res)
	log.Infow("detect_from_path completed", "count", res.Count, "inference_time_ms", res.InferenceTimeMs)

	writeRecord(w, res)
}

// detectFromBuffer accepts a raw BGRA body plus width/height/stride
// query parameters — the HTTP analogue of the ABI's `detect_from_buffer`
// entry point.
func (h *handler) detectFromBuffer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	width, height, stride, ok := h.dimsFromQuery(r)
	if !ok {
		http.Error(w, "width and height query parameters are required", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	conf, iou := h.thresholdsFromQuery(r)
	res := h.detector.DetectFromBuffer(data, width, height, stride, conf, iou)
	h.observe("detect_buffer", res)
	writeRecord(w, res)
}

func (h *handler) observe(endpoint string, res result.Result) {
	status := "ok"
	if res.Err != nil {
		status = string(res.Err.Code)
	} else {
		inferenceTimeMs.Observe(float64(res.InferenceTimeMs))
		detectionsReturnedTotal.Add(float64(res.Count))
	}
	detectRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

func (h *handler) thresholdsFromQuery(r *http.Request) (float32, float32) {
	conf := h.defConf
	iou := h.defIoU
	if v, err := strconv.ParseFloat(r.URL.Query().Get("conf_threshold"), 32); err == nil {
		conf = float32(v)
	}
	if v, err := strconv.ParseFloat(r.URL.Query().Get("iou_threshold"), 32); err == nil {
		iou = float32(v)
	}
	return conf, iou
}

func (h *handler) dimsFromQuery(r *http.Request) (width, height, stride int, ok bool) {
	w, errW := strconv.Atoi(r.URL.Query().Get("width"))
	ht, errH := strconv.Atoi(r.URL.Query().Get("height"))
	if errW != nil || errH != nil || w <= 0 || ht <= 0 {
		return 0, 0, 0, false
	}
	s, errS := strconv.Atoi(r.URL.Query().Get("stride"))
	if errS != nil || s <= 0 {
		s = w * 4
	}
	return w, ht, s, true
}

func writeRecord(w http.ResponseWriter, res result.Result) {
	w.Header().Set("Content-Type", "application/json")
	rec := result.Marshal(res)
	defer rec.Release()
	w.Write([]byte(rec.String()))
}
