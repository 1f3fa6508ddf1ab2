package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"flashquiz-backend/internal/models"
	"flashquiz-backend/internal/session"
)

const (
	sessionCookieName = "flashquiz_session"
	sessionIDKey      = "sid"
)

// sessionFor resolves the quiz session for the caller's browser, minting a
// new session id cookie on first contact. The session itself lives in the
// in-memory store; the cookie carries only the id.
func sessionFor(cookies *sessions.CookieStore, store *session.Store, w http.ResponseWriter, r *http.Request) (string, *models.QuizSession) {
	cookie, _ := cookies.Get(r, sessionCookieName)

	prev, _ := cookie.Values[sessionIDKey].(string)
	id, sess := store.Get(prev)

	if id != prev {
		cookie.Values[sessionIDKey] = id
		cookie.Save(r, w)
	}

	return id, sess
}
