package http

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/authz"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
)

// multipartOverhead is the allowance for headers and boundaries on top of
// the file size limit.
const multipartOverhead = 64 << 10

type DocumentsHandler struct {
	DocumentService *service.DocumentService
	Gate            *authz.Gate
}

// HandleUpload handles POST /api/projects/{id}/documents
//
//	@Summary		Upload document
//	@Description	Streams the multipart file field "document" into the project's document store.
//	@Tags			Documents
//	@Security		SessionCookie
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		string	true	"Project ID"
//	@Param			document	formData	file	true	"File to upload"
//	@Success		201			{object}	nexusapi.UploadDocumentResponse
//	@Failure		400			{object}	nexusapi.ErrorResponse	"Missing file"
//	@Failure		403			{object}	nexusapi.ErrorResponse	"Admin or Project Lead only"
//	@Failure		404			{object}	nexusapi.ErrorResponse	"No such project"
//	@Failure		413			{object}	nexusapi.ErrorResponse	"File too large"
//	@Router			/api/projects/{id}/documents [post].
func (h *DocumentsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.DocumentService.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.DocumentService.MaxBytes+multipartOverhead)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		nexusapi.ErrInvalidRequest.WithDescription("expected a multipart/form-data body").WriteError(w)
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			nexusapi.ErrInvalidRequest.WithDescription(`missing file field "` + nexusapi.UploadFormField + `"`).WriteError(w)
			return
		}
		if err != nil {
			var maxBytes *http.MaxBytesError
			if errors.As(err, &maxBytes) {
				nexusapi.ErrTooLarge.WriteError(w)
				return
			}
			nexusapi.ErrInvalidRequest.WithDescription("malformed multipart body").WriteError(w)
			return
		}

		if part.FormName() != nexusapi.UploadFormField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		doc, err := h.DocumentService.Upload(ctx, SessionFromContext(ctx), service.UploadRequest{
			ProjectID:    r.PathValue("id"),
			OriginalName: part.FileName(),
			ContentType:  part.Header.Get("Content-Type"),
			Body:         part,
		})
		_ = part.Close()
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, nexusapi.UploadDocumentResponse{
			Message:  "Document uploaded",
			Document: toDocument(doc),
		})
		return
	}
}

// HandleList handles GET /api/projects/{id}/documents
//
//	@Summary		List project documents
//	@Tags			Documents
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{array}		nexusapi.Document
//	@Failure		403	{object}	nexusapi.ErrorResponse	"Not assigned to project"
//	@Failure		404	{object}	nexusapi.ErrorResponse	"No such project"
//	@Router			/api/projects/{id}/documents [get].
func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.DocumentService.List(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(docs, toDocument))
}

// HandleDownload handles GET /api/documents/{id}/download
//
//	@Summary		Download document
//	@Description	Streams the document as an attachment under its original file name. Requires access to the owning project.
//	@Tags			Documents
//	@Security		SessionCookie
//	@Produce		octet-stream
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{file}		file
//	@Failure		401	{object}	nexusapi.ErrorResponse	"Not logged in"
//	@Failure		403	{object}	nexusapi.ErrorResponse	"Not assigned to the owning project"
//	@Failure		404	{object}	nexusapi.ErrorResponse	"No such document"
//	@Router			/api/documents/{id}/download [get].
func (h *DocumentsHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.DocumentService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Gate.RequireProjectAccess(ctx, SessionFromContext(ctx), doc.ProjectID); err != nil {
		writeError(w, r, err)
		return
	}

	obj, err := h.DocumentService.Open(ctx, doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer obj.Close()

	httpx.NoCache(w)
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": doc.OriginalName}))
	http.ServeContent(w, r, doc.OriginalName, obj.ModTime, obj)
}
