package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/auth"
	custommw "sheraa.ae/site/internal/httpserver/middleware"
	"sheraa.ae/site/internal/platform/requestctx"
	"sheraa.ae/site/internal/session"
	"sheraa.ae/site/internal/submissions"
	"sheraa.ae/site/internal/views"
)

const portalPath = "/portal"

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	next := safeNext(r.URL.Query().Get("next"), portalPath)
	if st.LoggedIn() {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	meta := s.meta(st, st.T("login.title"), st.T("login.lead"))
	meta.NoIndex = true
	s.render(w, r, http.StatusOK, views.Page{
		Meta: meta,
		Body: views.Login(st, views.LoginProps{Provider: s.provider, ProjectID: s.projectID, Next: next}),
	})
}

// authSession exchanges an ID token for a signed-in session.
func (s *Server) authSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := requestctx.Logger(ctx)
	sess, ok := custommw.SessionFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token := auth.TokenFromRequest(r)
	var (
		user *auth.User
		err  error
	)
	if token == "" {
		err = auth.NewError(auth.ReasonMissingToken, auth.ErrUnauthorized)
	} else {
		user, err = s.authn.Authenticate(ctx, token)
	}
	if err != nil {
		logger.Info("sign-in rejected", zap.String("reason", auth.Reason(err)))
		key := "toast.auth.failed"
		if auth.Reason(err) == auth.ReasonTokenExpired {
			key = "toast.auth.expired"
		}
		if custommw.IsFragmentRequest(ctx) {
			s.toast(w, r, "error", key)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		sess.AddToast("error", key)
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	}

	sess.SetUser(&session.User{UID: user.UID, Email: user.Email, Name: user.Name, Verified: user.EmailVerified})
	sess.AddToast("success", "toast.auth.signed_in")
	logger.Info("signed in", zap.String("uid", user.UID))
	redirect(w, r, safeNext(r.PostFormValue("next"), portalPath))
}

func (s *Server) authLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.SetUser(nil)
		sess.AddToast("success", "toast.auth.signed_out")
	}
	redirect(w, r, "/")
}

func (s *Server) portal(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	var subs []submissions.Submission
	if st.User.Verified && st.User.Email != "" {
		var err error
		subs, err = s.submissions.ForEmail(r.Context(), st.User.Email)
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}
	meta := s.meta(st, st.T("portal.heading"), "")
	meta.NoIndex = true
	s.render(w, r, http.StatusOK, views.Page{Meta: meta, Body: views.Portal(st, subs)})
}
