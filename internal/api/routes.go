package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/chiheb08/vespa-vectorstore/internal/api/middleware"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check with store reachability and effective configuration").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/ingest/text").
			To(handler.IngestText).
			Doc("Chunk, embed and feed a text document").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ingest"}).
			Reads(IngestTextRequest{}).
			Writes(IngestResponse{}).
			Returns(200, "OK", IngestResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Store or Provider Unavailable", IngestResponse{}))

	ws.
		Route(ws.POST("/ingest/file").
			To(handler.IngestFile).
			Doc("Upload a text or PDF file for ingestion").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ingest"}).
			Consumes("multipart/form-data").
			Param(ws.FormParameter("file", "File to ingest (text or PDF)").DataType("file").Required(true)).
			Param(ws.FormParameter("request_id", "Correlation id, generated when absent").DataType("string")).
			Param(ws.FormParameter("doc_id", "Document id, defaults to the filename").DataType("string")).
			Param(ws.FormParameter("tenant_id", "Tenant filter value").DataType("string")).
			Param(ws.FormParameter("source", "Source filter value").DataType("string")).
			Param(ws.FormParameter("pdf_password", "Password for encrypted PDFs").DataType("string")).
			Writes(IngestResponse{}).
			Returns(200, "OK", IngestResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Store or Provider Unavailable", IngestResponse{}))

	ws.
		Route(ws.POST("/search").
			To(handler.Search).
			Doc("Embed the query and run ranked retrieval").
			Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
			Reads(SearchRequest{}).
			Writes(SearchResponse{}).
			Returns(200, "OK", SearchResponse{}).
			Returns(400, "Bad Request", SearchResponse{}).
			Returns(502, "Store or Provider Unavailable", SearchResponse{}))

	container.Add(ws)

	// OpenAI-compatible surface, so existing chat clients can point here.
	compat := new(restful.WebService)

	compat.
		Path("/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	compat.
		Route(compat.GET("/models").
			To(handler.Models).
			Doc("List the configured chat and embedding models").
			Metadata(restfulspec.KeyOpenAPITags, []string{"openai"}).
			Writes(ModelList{}).
			Returns(200, "OK", ModelList{}))

	compat.
		Route(compat.POST("/chat/completions").
			To(handler.ChatCompletions).
			Doc("Retrieval-grounded chat completion").
			Metadata(restfulspec.KeyOpenAPITags, []string{"openai"}).
			Reads(ChatCompletionRequest{}).
			Writes(ChatCompletionResponse{}).
			Returns(200, "OK", ChatCompletionResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Model Not Found", middleware.ErrorResponse{}).
			Returns(502, "Store or Provider Unavailable", middleware.ErrorResponse{}))

	container.Add(compat)
}
