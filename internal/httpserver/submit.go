package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/forms"
	custommw "sheraa.ae/site/internal/httpserver/middleware"
	"sheraa.ae/site/internal/submissions"
	"sheraa.ae/site/internal/views"
)

// formRoute describes how one form renders in its two shapes: the fragment
// swapped by htmx and the full page used without JavaScript.
type formRoute struct {
	toast    string
	redirect string
	fragment func(st *appctx.State, fs views.FormState) g.Node
	page     func(w http.ResponseWriter, r *http.Request, status int, fs views.FormState)
}

func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	s.contactPage(w, r, http.StatusOK, views.FormState{})
}

func (s *Server) contactPage(w http.ResponseWriter, r *http.Request, status int, fs views.FormState) {
	st := appctx.From(r.Context())
	s.render(w, r, status, views.Page{
		Meta: s.meta(st, st.T("contact.title"), st.T("contact.lead")),
		Body: views.Contact(st, fs),
	})
}

func (s *Server) contactSubmit(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, &forms.Contact{}, formRoute{
		toast:    "toast.contact.sent",
		redirect: "/contact",
		fragment: views.ContactForm,
		page:     s.contactPage,
	})
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	s.applyPage(w, r, http.StatusOK, views.FormState{})
}

func (s *Server) applyProgram(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Program(chi.URLParam(r, "program"))
	if err != nil {
		s.notFound(w, r)
		return
	}
	s.applyPage(w, r, http.StatusOK, views.FormState{Values: map[string][]string{"program": {p.Slug}}})
}

func (s *Server) applyPage(w http.ResponseWriter, r *http.Request, status int, fs views.FormState) {
	st := appctx.From(r.Context())
	s.render(w, r, status, views.Page{
		Meta: s.meta(st, st.T("apply.title"), st.T("apply.lead")),
		Body: views.Apply(st, s.catalog.Programs(), fs),
	})
}

func (s *Server) applySubmit(w http.ResponseWriter, r *http.Request) {
	programs := s.catalog.Programs()
	s.submit(w, r, &forms.Application{}, formRoute{
		toast:    "toast.apply.sent",
		redirect: "/apply",
		fragment: func(st *appctx.State, fs views.FormState) g.Node {
			return views.ApplicationForm(st, programs, fs)
		},
		page: s.applyPage,
	})
}

func (s *Server) newsletterSubmit(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, &forms.Newsletter{}, formRoute{
		toast:    "toast.newsletter.sent",
		redirect: "/",
		fragment: views.NewsletterForm,
		page: func(w http.ResponseWriter, r *http.Request, status int, fs views.FormState) {
			st := appctx.From(r.Context())
			s.renderWith(w, r, status, views.Page{
				Meta: s.meta(st, st.T("newsletter.title"), ""),
				Body: views.Newsletter(st),
			}, fs)
		},
	})
}

// submit decodes, validates and stores a form. Invalid input re-renders the
// form with 422 and the visitor's values; success resets the form.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, dst forms.Submittable, route formRoute) {
	ctx := r.Context()
	st := appctx.From(ctx)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	errs, err := s.forms.Decode(r.PostForm, dst)
	if err != nil {
		s.logFailure(r, "form decode failed", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if len(errs) > 0 {
		s.renderForm(w, r, route, http.StatusUnprocessableEntity, views.FormState{Values: r.PostForm, Errors: errs})
		return
	}

	meta := submissions.Meta{Locale: st.Lang}
	if st.User != nil {
		meta.UserID = st.User.UID
	}
	if _, err := s.submissions.Submit(ctx, dst, meta); err != nil {
		s.logFailure(r, "form submission failed", err)
		s.toast(w, r, "error", "toast.submit.failed")
		s.renderForm(w, r, route, http.StatusOK, views.FormState{Values: r.PostForm})
		return
	}

	s.toast(w, r, "success", route.toast)
	if custommw.IsFragmentRequest(ctx) {
		views.Render(w, r, http.StatusOK, route.fragment(st, views.FormState{Sent: true}))
		return
	}
	http.Redirect(w, r, route.redirect, http.StatusSeeOther)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, route formRoute, status int, fs views.FormState) {
	if custommw.IsFragmentRequest(r.Context()) {
		views.Render(w, r, status, route.fragment(appctx.From(r.Context()), fs))
		return
	}
	route.page(w, r, status, fs)
}
