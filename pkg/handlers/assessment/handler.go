package assessment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/govern-atlas/pkg/adapters"
	"github.com/de-tools/govern-atlas/pkg/export"
	"github.com/de-tools/govern-atlas/pkg/export/jsonexport"
	"github.com/de-tools/govern-atlas/pkg/models/api"
	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/services/project"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	ctrl     *project.Controller
	registry export.Registry
}

func NewHandler(ctrl *project.Controller, registry export.Registry) *Handler {
	return &Handler{
		ctrl:     ctrl,
		registry: registry,
	}
}

func (h *Handler) ListPillars(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var response []api.Pillar
	for _, p := range h.ctrl.Project().Pillars {
		response = append(response, adapters.MapPillarDomainToApi(p))
	}

	writeJSON(w, logger, response)
}

func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	writeJSON(w, logger, adapters.MapScorecardDomainToApi(h.ctrl.Scores()))
}

func (h *Handler) SetResponse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	questionID := chi.URLParam(r, "question")

	var body api.Response
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid response body", http.StatusBadRequest)
		return
	}
	resp, ok := adapters.MapApiResponseToDomain(body)
	if !ok {
		http.Error(w, "invalid response value", http.StatusBadRequest)
		return
	}

	card, err := h.ctrl.SetResponse(ctx, questionID, resp)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrUnknownQuestion) {
			status = http.StatusNotFound
		}
		logger.Error().Err(err).Str("question", questionID).Msg("failed to record response")
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, logger, adapters.MapScorecardDomainToApi(card))
}

func (h *Handler) GetBaseline(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	baseline, err := h.ctrl.Baseline()
	if errors.Is(err, project.ErrNoBaseline) {
		http.Error(w, "no baseline captured", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapBaselineDomainToApi(baseline))
}

func (h *Handler) CreateBaseline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	baseline, err := h.ctrl.CreateBaseline(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to capture baseline")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapBaselineDomainToApi(baseline))
}

func (h *Handler) ResetBaseline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	baseline, err := h.ctrl.ResetBaseline(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to reset baseline")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapBaselineDomainToApi(baseline))
}

func (h *Handler) GetGaps(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	closure, err := h.ctrl.GapAnalysis()
	if errors.Is(err, project.ErrNoBaseline) {
		http.Error(w, "no baseline captured", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute gap closure")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapGapClosureDomainToApi(closure))
}

func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	plan, err := h.ctrl.GeneratePlan(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate plan")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, mapTasks(plan.Tasks))
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	plan, err := h.ctrl.Plan()
	if errors.Is(err, project.ErrNoPlan) {
		http.Error(w, "no plan generated", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, mapTasks(plan.Tasks))
}

func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	taskID := chi.URLParam(r, "task")

	var body api.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid status body", http.StatusBadRequest)
		return
	}

	card, err := h.ctrl.SetTaskStatus(ctx, taskID, domain.TaskStatus(body.Status), body.User, body.Comment)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrUnknownTask) {
			status = http.StatusNotFound
		}
		logger.Error().Err(err).Str("task", taskID).Msg("failed to update task status")
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, logger, adapters.MapScorecardDomainToApi(card))
}

func (h *Handler) AttachEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	taskID := chi.URLParam(r, "task")

	var body api.EvidenceUpload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FileName == "" {
		http.Error(w, "invalid evidence body", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.AttachEvidence(ctx, taskID, body.FileName, body.User); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrUnknownTask) {
			status = http.StatusNotFound
		}
		logger.Error().Err(err).Str("task", taskID).Msg("failed to attach evidence")
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	entries, err := h.ctrl.Audit().EntriesByTimeDesc(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load audit trail")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var response []api.AuditEntry
	for _, e := range entries {
		response = append(response, adapters.MapAuditEntryDomainToApi(e))
	}

	writeJSON(w, logger, response)
}

func (h *Handler) GetAuditSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	summary, err := h.ctrl.Audit().Summary(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to summarize audit trail")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapAuditSummaryDomainToApi(summary))
}

// Import replaces the project state with a previously exported snapshot.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	state, err := jsonexport.Import(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ctrl.ImportState(ctx, state); err != nil {
		logger.Error().Err(err).Msg("failed to import project state")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapScorecardDomainToApi(h.ctrl.Scores()))
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	format := chi.URLParam(r, "format")

	exporter, err := h.registry.Create(format)
	if err != nil {
		http.Error(w, "unsupported export format", http.StatusNotFound)
		return
	}

	payload, err := h.ctrl.ExportPayload(ctx)
	if err != nil {
		logger.Error().Err(err).Str("format", format).Msg("failed to assemble export payload")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	if err := exporter.Export(ctx, payload, w); err != nil {
		logger.Error().Err(err).Str("format", format).Msg("failed to write export")
	}
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func mapTasks(tasks []domain.Task) []api.Task {
	var response []api.Task
	for _, t := range tasks {
		response = append(response, adapters.MapTaskDomainToApi(t))
	}
	return response
}

func contentTypeFor(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "excel":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "word-executive", "word-technical":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}
