package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/msgdrop/internal/domain"
	"github.com/msomdec/msgdrop/internal/service"
)

// maxUploadMemory bounds how much of a multipart upload is buffered in
// memory before spilling to temp files.
const maxUploadMemory = 32 << 20 // 32MB

// MessageHandler handles message ingestion and retrieval.
type MessageHandler struct {
	messages *service.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// HandlePostText stores a text message.
// POST /message/text
// Request:  {"content":"..."}
// Response: 201 {"message":"Text message created","id":N}
func (h *MessageHandler) HandlePostText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	msg, err := h.messages.PostText(r.Context(), req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Content is required.")
			return
		}
		slog.Error("post text message", "error", err)
		writeError(w, http.StatusInternalServerError, "Error saving message.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Text message created",
		"id":      msg.ID,
	})
}

// HandlePostFile stores an uploaded file as a message.
// POST /message/file (multipart, field "file")
// Response: 201 {"message":"File message posted","id":N}
func (h *MessageHandler) HandlePostFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart body.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	msg, err := h.messages.PostFile(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Invalid filename.")
			return
		}
		slog.Error("post file message", "error", err)
		writeError(w, http.StatusInternalServerError, "Error posting file message.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "File message posted",
		"id":      msg.ID,
	})
}

// HandleList returns a page of message records, newest first.
// GET /message/list?page=N&limit=N
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Unparseable values fall back to the defaults.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.messages.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("list messages", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching messages.")
		return
	}

	writeJSON(w, http.StatusOK, toMessageDTOs(messages))
}

// HandleGetContent returns the message body: text/plain for text messages,
// the blob bytes with an inferred content type for file messages.
// GET /message/content?id=N
func (h *MessageHandler) HandleGetContent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message id.")
		return
	}

	data, contentType, err := h.messages.GetContent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Message not found.")
			return
		}
		slog.Error("get message content", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching message content.")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
