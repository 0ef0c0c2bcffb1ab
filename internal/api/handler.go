package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/api/middleware"
	"github.com/chiheb08/vespa-vectorstore/internal/config"
	"github.com/chiheb08/vespa-vectorstore/internal/executor"
	"github.com/chiheb08/vespa-vectorstore/internal/extract"
	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

const version = "1.0.0"

// maxUploadBytes bounds /ingest/file request bodies.
const maxUploadBytes = 64 << 20

// StorePinger is the health-check view of the vector store client.
type StorePinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	cfg    *config.Config
	ingest *executor.IngestExecutor
	answer *executor.AnswerExecutor
	store  StorePinger
	logger *zerolog.Logger
}

func NewHandler(
	cfg *config.Config,
	ingest *executor.IngestExecutor,
	answer *executor.AnswerExecutor,
	store StorePinger,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		cfg:    cfg,
		ingest: ingest,
		answer: answer,
		store:  store,
		logger: logger,
	}
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	health := HealthResponse{
		Status:     "ok",
		Version:    version,
		Store:      "ok",
		Namespace:  h.cfg.VespaNamespace,
		DocType:    h.cfg.VespaDocType,
		EmbedModel: h.cfg.EmbedModel,
		EmbedDim:   h.cfg.EmbedDim,
		ChatModel:  h.cfg.ChatModel,
	}

	if err := h.store.Ping(req.Request.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("store health check failed")
		health.Status = "degraded"
		health.Store = "unreachable"
	}

	resp.WriteHeaderAndEntity(http.StatusOK, health)
}

// POST /api/v1/ingest/text
func (h *Handler) IngestText(req *restful.Request, resp *restful.Response) {
	var ingestRequest IngestTextRequest
	if err := req.ReadEntity(&ingestRequest); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.ingestDocument(req.Request.Context(), resp, ingestRequest.RequestID, models.Document{
		DocID:    ingestRequest.DocID,
		TenantID: ingestRequest.TenantID,
		Source:   ingestRequest.Source,
		Title:    ingestRequest.Title,
		Body:     ingestRequest.Text,
	})
}

// POST /api/v1/ingest/file
// Multipart form: file (required), doc_id, tenant_id, source, title,
// pdf_password.
func (h *Handler) IngestFile(req *restful.Request, resp *restful.Response) {
	r := req.Request
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.HandleError(resp, faults.Wrap(faults.KindValidation, "multipart field \"file\" is required", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(resp, faults.Wrap(faults.KindValidation, "unable to read upload", err), http.StatusBadRequest)
		return
	}

	text, err := extract.Text(header.Filename, data, r.FormValue("pdf_password"))
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("upload extraction failed")
		middleware.HandleFault(resp, err)
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = header.Filename
	}

	h.ingestDocument(req.Request.Context(), resp, r.FormValue("request_id"), models.Document{
		DocID:    docID,
		TenantID: r.FormValue("tenant_id"),
		Source:   r.FormValue("source"),
		Title:    r.FormValue("title"),
		Body:     text,
	})
}

func (h *Handler) ingestDocument(ctx context.Context, resp *restful.Response, requestID string, doc models.Document) {
	if requestID == "" {
		requestID = uuid.NewString()
	}

	h.logger.Info().
		Str("requestID", requestID).
		Str("docID", doc.DocID).
		Msg("ingest request")

	result, err := h.ingest.Ingest(ctx, doc)

	body := IngestResponse{
		RequestID:    requestID,
		OK:           err == nil,
		IngestResult: result,
	}
	if err != nil {
		body.Error = err.Error()
		body.Kind = string(faults.KindOf(err))
		resp.WriteHeaderAndEntity(middleware.StatusFor(faults.KindOf(err)), body)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, body)
}

// POST /api/v1/search
func (h *Handler) Search(req *restful.Request, resp *restful.Response) {
	var searchRequest SearchRequest
	if err := req.ReadEntity(&searchRequest); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	requestID := searchRequest.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	mode := models.SearchMode(searchRequest.Mode)
	if searchRequest.Mode == "" {
		mode = models.ModeVector
	}

	out, err := h.answer.Search(req.Request.Context(), executor.SearchParams{
		RequestID:  requestID,
		Query:      searchRequest.Query,
		Mode:       mode,
		Filters:    searchRequest.Filters,
		Hits:       searchRequest.Hits,
		TargetHits: searchRequest.TargetHits,
	})

	body := SearchResponse{
		RequestID:  requestID,
		OK:         err == nil,
		HTTPStatus: out.Status,
		Hits:       out.Hits,
		YQL:        out.YQL,
		Timings:    out.Timings,
	}
	if err != nil {
		body.Error = err.Error()
		body.Kind = string(faults.KindOf(err))
		resp.WriteHeaderAndEntity(middleware.StatusFor(faults.KindOf(err)), body)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, body)
}

// GET /v1/models
func (h *Handler) Models(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, ModelList{
		Object: "list",
		Data: []ModelInfo{
			{ID: h.cfg.ChatModel, Object: "model", OwnedBy: "local"},
			{ID: h.cfg.EmbedModel, Object: "model", OwnedBy: "local"},
		},
	})
}

// POST /v1/chat/completions
func (h *Handler) ChatCompletions(req *restful.Request, resp *restful.Response) {
	var chatRequest ChatCompletionRequest
	if err := req.ReadEntity(&chatRequest); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if chatRequest.Model != "" && chatRequest.Model != h.cfg.ChatModel {
		middleware.HandleFault(resp, faults.Newf(faults.KindModelNotFound,
			"model %q is not served here; configured chat model is %q", chatRequest.Model, h.cfg.ChatModel))
		return
	}

	mode := models.SearchMode(chatRequest.Mode)
	if chatRequest.Mode == "" {
		mode = models.ModeVector
	}

	requestID := uuid.NewString()

	answer, err := h.answer.Answer(req.Request.Context(), requestID, mode, chatRequest.Filters, chatRequest.Messages)
	if err != nil {
		middleware.HandleFault(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, ChatCompletionResponse{
		ID:      "chatcmpl-" + requestID,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   h.cfg.ChatModel,
		Choices: []ChatCompletionChoice{
			{
				Index:        0,
				Message:      models.ChatMessage{Role: models.RoleAssistant, Content: answer.Content},
				FinishReason: "stop",
			},
		},
		Debug: ChatDebug{
			RequestID:  requestID,
			Namespace:  h.cfg.VespaNamespace,
			TopK:       h.cfg.TopK,
			TargetHits: h.cfg.TargetHits,
			EmbedModel: h.cfg.EmbedModel,
			ChatModel:  h.cfg.ChatModel,
			Timings:    answer.Timings,
			Sources:    answer.Sources,
		},
	})
}
