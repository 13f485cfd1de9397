package handler

import (
	"net/http"

	"github.com/msomdec/msgdrop/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Every route
// under /message re-verifies basic-auth credentials per request.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, messages *service.MessageService) {
	accounts := NewAccountHandler(auth)
	msgs := NewMessageHandler(messages)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireBasicAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("POST /account/register", accounts.HandleRegister)

	mux.Handle("POST /message/text", protected(msgs.HandlePostText))
	mux.Handle("POST /message/file", protected(msgs.HandlePostFile))
	mux.Handle("GET /message/list", protected(msgs.HandleList))
	mux.Handle("GET /message/content", protected(msgs.HandleGetContent))
}
