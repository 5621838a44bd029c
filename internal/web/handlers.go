package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/emokit/emotion-insights/internal/audio"
	"github.com/emokit/emotion-insights/internal/hume"
	"github.com/emokit/emotion-insights/internal/insights"
	"github.com/emokit/emotion-insights/internal/phases"
	"github.com/emokit/emotion-insights/internal/results"
	"github.com/emokit/emotion-insights/internal/timeline"
)

// audioFilenameFormat timestamps uploaded clips: audio_20250318_161126.wav
const audioFilenameFormat = "audio_20060102_150405.wav"

// maxUploadBytes bounds a single clip upload (the device sends ~5s of
// 16kHz 16-bit mono, well under this).
const maxUploadBytes = 10 << 20

// Analyzer abstracts the Hume client for testing.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) ([]hume.Prediction, error)
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	store      results.Store
	analyzer   Analyzer
	insights   insights.Generator // nil when insight generation is disabled
	templates  *Templates
	uploadsDir string
}

// NewHandlers creates a new Handlers instance. analyzer and generator may be
// nil; the corresponding features degrade gracefully.
func NewHandlers(store results.Store, analyzer Analyzer, generator insights.Generator, templates *Templates, uploadsDir string) *Handlers {
	return &Handlers{
		store:      store,
		analyzer:   analyzer,
		insights:   generator,
		templates:  templates,
		uploadsDir: uploadsDir,
	}
}

// timeSlots derives the chart fixture from stored recordings, falling back
// to the built-in demo fixture when nothing has been recorded yet.
func (h *Handlers) timeSlots(ctx context.Context) ([]timeline.TimeSlot, bool) {
	recordings, err := h.store.List(ctx, 0)
	if err != nil {
		log.Printf("listing recordings: %v", err)
		return timeline.DefaultFixture(), true
	}
	if len(recordings) == 0 {
		return timeline.DefaultFixture(), true
	}
	return results.TimeSlots(recordings, results.DefaultTopN), false
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		log.Printf("counting recordings: %v", err)
	}

	data := HomePageData{
		PageData: PageData{
			Title:       "Emotion Insights",
			CurrentPath: r.URL.Path,
		},
		RecordingCount:  count,
		InsightsEnabled: h.insights != nil,
	}

	recordings, err := h.store.List(r.Context(), 1)
	if err == nil && len(recordings) > 0 {
		for _, e := range results.TopEmotions(recordings[0].Emotions, results.DefaultTopN) {
			data.LatestEmotions = append(data.LatestEmotions, EmotionDisplay{
				Name:  e.Name,
				Score: fmt.Sprintf("%.3f", e.Score),
				Color: results.PaletteColor(e.Name),
			})
		}
		for _, e := range results.Peaks(recordings[0].Emotions, 0) {
			data.PeakEmotions = append(data.PeakEmotions, EmotionDisplay{
				Name:  e.Name,
				Score: fmt.Sprintf("%.3f", e.PeakScore),
				Color: results.PaletteColor(e.Name),
			})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// Timeline handles the chart page (GET /timeline).
// Query params "view" (all|top5) and "time" ("all" or a slot label) set the
// selection state; anything unrecognized falls back to the defaults.
func (h *Handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	slots, demo := h.timeSlots(r.Context())

	view := timeline.NewView(slots)
	switch timeline.ViewType(r.URL.Query().Get("view")) {
	case timeline.ViewTop5:
		view.SetViewType(timeline.ViewTop5)
	case timeline.ViewStacked:
		view.SetViewType(timeline.ViewStacked)
	}
	if t := r.URL.Query().Get("time"); t != "" {
		view.SetSelectedTime(t)
	}

	rows := view.AllRows()
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Time)
	}

	detected, _ := phases.DetectPhases(rows, view.Categories(), phases.DefaultConfig())

	data := TimelinePageData{
		PageData: PageData{
			Title:       "Emotion Timeline",
			CurrentPath: r.URL.Path,
		},
		Rows:       view.Rows(),
		Series:     view.Series(),
		SlotLabels: labels,
		ViewType:   view.State().ViewType,
		Selected:   view.State().SelectedTime,
		Phases:     detected,
		UsingDemo:  demo,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "timeline", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// Tooltip handles the hover tooltip partial (GET /timeline/tooltip).
// When the formatter produces nothing the response body is empty, so the
// chart surface swaps in no tooltip at all rather than an empty box.
func (h *Handlers) Tooltip(w http.ResponseWriter, r *http.Request) {
	slots, _ := h.timeSlots(r.Context())
	label := r.URL.Query().Get("time")

	var payload []*timeline.TooltipEntry
	colors := timeline.Colors(slots)
	for _, row := range timeline.ChartRows(slots) {
		if row.Time != label {
			continue
		}
		for _, name := range timeline.Categories(slots) {
			if v, ok := row.Values[name]; ok {
				payload = append(payload, &timeline.TooltipEntry{
					Name:  name,
					Value: v,
					Fill:  colors[name],
				})
			}
		}
	}

	lines := timeline.FormatTooltip(payload != nil, payload)
	if lines == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "tooltip", TooltipData{Time: label, Lines: lines}); err != nil {
		http.Error(w, "Failed to render partial", http.StatusInternalServerError)
		return
	}
}

// audioResponse is the JSON reply to a clip upload.
type audioResponse struct {
	Message    string  `json:"message"`
	Filename   string  `json:"filename"`
	Timestamp  string  `json:"timestamp"`
	FileSizeKB float64 `json:"file_size_kb"`
	Analyzed   bool    `json:"analyzed"`
}

// ReceiveAudio handles raw PCM clip uploads from the device (POST /audio).
// The clip is wrapped as a WAV file on disk; when an analyzer is configured
// the clip is run through prosody analysis and the result stored.
func (h *Handlers) ReceiveAudio(w http.ResponseWriter, r *http.Request) {
	pcm, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "Audio data too large")
			return
		}
		http.Error(w, "Failed to read audio data", http.StatusBadRequest)
		return
	}
	if len(pcm) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No audio data received")
		return
	}

	now := time.Now()
	filename := now.Format(audioFilenameFormat)
	path := filepath.Join(h.uploadsDir, filename)

	f, err := os.Create(path)
	if err != nil {
		log.Printf("creating audio file: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save audio")
		return
	}
	if err := audio.EncodeDeviceWAV(f, pcm); err != nil {
		f.Close()
		os.Remove(path)
		log.Printf("encoding WAV: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save audio")
		return
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		log.Printf("closing audio file: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save audio")
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Printf("stat audio file: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save audio")
		return
	}

	resp := audioResponse{
		Message:    "Audio data received and saved successfully",
		Filename:   filename,
		Timestamp:  now.Format("20060102_150405"),
		FileSizeKB: float64(info.Size()) / 1024,
	}
	log.Printf("Received audio file: %s (%.2f KB, %.1fs)",
		filename, resp.FileSizeKB,
		audio.Duration(len(pcm), audio.DefaultSampleRate, audio.DefaultChannels, audio.DefaultBitsPerSample))

	// Analysis failures don't fail the upload; the clip is already saved.
	if h.analyzer != nil {
		if err := h.analyzeAndStore(r.Context(), path, filename, now); err != nil {
			log.Printf("analyzing %s: %v", filename, err)
		} else {
			resp.Analyzed = true
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// analyzeAndStore runs prosody analysis on a saved clip and persists the
// aggregated result.
func (h *Handlers) analyzeAndStore(ctx context.Context, path, filename string, recordedAt time.Time) error {
	predictions, err := h.analyzer.AnalyzeFile(ctx, path)
	if err != nil {
		return err
	}

	scores := results.Aggregate(predictions)
	if len(scores) == 0 {
		return errors.New("no emotions detected")
	}

	return h.store.Save(ctx, &results.Recording{
		Filename:   filename,
		RecordedAt: recordedAt,
		Emotions:   scores,
	})
}

// noDataMessage is returned while no recording has been analyzed yet.
const noDataMessage = "No emotion data available yet. Start tracking your emotions to receive insights."

// Insights handles insight generation (GET /api/insights).
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	if h.insights == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Insight generation is not configured")
		return
	}

	slots, demo := h.timeSlots(r.Context())
	if demo {
		writeJSONError(w, http.StatusOK, noDataMessage)
		return
	}

	insight, err := h.insights.Generate(r.Context(), slots)
	if errors.Is(err, insights.ErrNoData) {
		writeJSONError(w, http.StatusOK, noDataMessage)
		return
	}
	if err != nil {
		log.Printf("generating insights: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Unable to generate insights at this time.")
		return
	}

	writeJSON(w, http.StatusOK, insight)
}

// InsightsPanel handles the home-page insight fragment (GET /insights/panel).
// It renders the same generation result as the JSON endpoint as HTML;
// failures degrade to a short message rather than an error status.
func (h *Handlers) InsightsPanel(w http.ResponseWriter, r *http.Request) {
	var data InsightPanelData

	switch {
	case h.insights == nil:
		data.Message = "Insight generation is not configured."
	default:
		slots, demo := h.timeSlots(r.Context())
		if demo {
			data.Message = noDataMessage
			break
		}

		insight, err := h.insights.Generate(r.Context(), slots)
		switch {
		case errors.Is(err, insights.ErrNoData):
			data.Message = noDataMessage
		case err != nil:
			log.Printf("generating insights: %v", err)
			data.Message = "Unable to generate insights at this time."
		default:
			data.Insight = insight
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "insight", data); err != nil {
		http.Error(w, "Failed to render partial", http.StatusInternalServerError)
		return
	}
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeJSONError writes an {"error": ...} JSON body.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
