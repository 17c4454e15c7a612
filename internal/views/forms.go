package views

import (
	"fmt"
	"net/url"
	"strings"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/forms"
)

// FormState carries submitted values and validation errors back into a form.
type FormState struct {
	Values url.Values
	Errors forms.Errors
	Sent   bool
}

func (f FormState) value(name string) string {
	if f.Values == nil {
		return ""
	}
	return f.Values.Get(name)
}

// field describes one input.
type field struct {
	form     string
	name     string
	labelKey string
	kind     string
	required bool
	attrs    []g.Node
}

func (fd field) id() string { return fd.form + "-" + strings.ReplaceAll(fd.name, "_", "-") }

func fieldMessage(st *appctx.State, fe forms.FieldError) string {
	msg := st.T(fe.Key)
	if fe.Param != "" && strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param)
	}
	return msg
}

func renderField(st *appctx.State, fs FormState, fd field, control g.Node) g.Node {
	fe, invalid := fs.Errors[fd.name]
	return h.Div(c.Classes{"field": true, "invalid": invalid},
		g.El("label", h.For(fd.id()),
			g.Text(st.T(fd.labelKey)),
			g.If(fd.required, h.Span(h.Class("required"), g.Attr("aria-hidden", "true"), g.Text(" *"))),
		),
		control,
		g.If(invalid, h.P(h.Class("field-error"), h.ID(fd.id()+"-error"), g.Text(fieldMessage(st, fe)))),
	)
}

func controlAttrs(fs FormState, fd field) g.Node {
	_, invalid := fs.Errors[fd.name]
	return g.Group{
		h.ID(fd.id()),
		h.Name(fd.name),
		g.If(fd.required, h.Required()),
		g.If(invalid, g.Group{
			g.Attr("aria-invalid", "true"),
			g.Attr("aria-describedby", fd.id()+"-error"),
		}),
		g.Group(fd.attrs),
	}
}

func input(st *appctx.State, fs FormState, fd field) g.Node {
	kind := fd.kind
	if kind == "" {
		kind = "text"
	}
	return renderField(st, fs, fd, h.Input(h.Type(kind), controlAttrs(fs, fd), h.Value(fs.value(fd.name))))
}

func textarea(st *appctx.State, fs FormState, fd field) g.Node {
	return renderField(st, fs, fd, g.El("textarea", h.Rows("6"), controlAttrs(fs, fd), g.Text(fs.value(fd.name))))
}

type choice struct {
	value    string
	labelKey string
	label    string
}

func selectField(st *appctx.State, fs FormState, fd field, choices []choice) g.Node {
	current := fs.value(fd.name)
	return renderField(st, fs, fd, h.Select(controlAttrs(fs, fd),
		h.Option(h.Value(""), g.Text(st.T("form.choose"))),
		g.Map(choices, func(ch choice) g.Node {
			label := ch.label
			if ch.labelKey != "" {
				label = st.T(ch.labelKey)
			}
			return h.Option(h.Value(ch.value), g.If(ch.value == current, h.Selected()), g.Text(label))
		}),
	))
}

func honeypot() g.Node {
	return h.Div(h.Class("hp"), g.Attr("aria-hidden", "true"),
		g.El("label", g.Text("Nickname"), h.Input(h.Type("text"), h.Name("nickname"), h.TabIndex("-1"), h.AutoComplete("off"))),
	)
}

func formShell(st *appctx.State, id, action string, fs FormState, children ...g.Node) g.Node {
	return g.El("form",
		h.ID(id),
		h.Class("site-form"),
		h.Method("post"),
		h.Action(action),
		g.Attr("hx-post", action),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("novalidate", ""),
		csrfField(st),
		honeypot(),
		g.If(len(fs.Errors) > 0, h.P(h.Class("form-summary"), g.Attr("role", "alert"), g.Text(st.T("form.has_errors")))),
		g.If(fs.Sent, h.P(h.Class("form-success"), g.Attr("role", "status"), g.Text(st.T("form.sent")))),
		g.Group(children),
	)
}

// ContactForm renders the general enquiry form.
func ContactForm(st *appctx.State, fs FormState) g.Node {
	subjects := []choice{
		{value: "general", labelKey: "contact.subject.general"},
		{value: "programs", labelKey: "contact.subject.programs"},
		{value: "partnerships", labelKey: "contact.subject.partnerships"},
		{value: "media", labelKey: "contact.subject.media"},
		{value: "careers", labelKey: "contact.subject.careers"},
	}
	return formShell(st, "contact-form", "/contact", fs,
		input(st, fs, field{form: "contact", name: "name", labelKey: "form.name", required: true, attrs: []g.Node{h.AutoComplete("name")}}),
		input(st, fs, field{form: "contact", name: "email", labelKey: "form.email", kind: "email", required: true, attrs: []g.Node{h.AutoComplete("email")}}),
		input(st, fs, field{form: "contact", name: "phone", labelKey: "form.phone", kind: "tel", attrs: []g.Node{h.AutoComplete("tel")}}),
		selectField(st, fs, field{form: "contact", name: "subject", labelKey: "form.subject", required: true}, subjects),
		textarea(st, fs, field{form: "contact", name: "message", labelKey: "form.message", required: true}),
		h.Button(h.Type("submit"), h.Class("btn"), g.Text(st.T("form.send"))),
	)
}

// ApplicationForm renders the program application form.
func ApplicationForm(st *appctx.State, programs []catalog.Program, fs FormState) g.Node {
	options := make([]choice, 0, len(programs))
	for _, p := range programs {
		options = append(options, choice{value: p.Slug, label: p.Name.In(st.Lang)})
	}
	stages := []choice{
		{value: "idea", labelKey: "apply.stage.idea"},
		{value: "mvp", labelKey: "apply.stage.mvp"},
		{value: "revenue", labelKey: "apply.stage.revenue"},
		{value: "scaling", labelKey: "apply.stage.scaling"},
	}
	_, consentInvalid := fs.Errors["consent"]
	return formShell(st, "apply-form", "/apply", fs,
		selectField(st, fs, field{form: "apply", name: "program", labelKey: "apply.program", required: true}, options),
		input(st, fs, field{form: "apply", name: "founder_name", labelKey: "apply.founder_name", required: true, attrs: []g.Node{h.AutoComplete("name")}}),
		input(st, fs, field{form: "apply", name: "email", labelKey: "form.email", kind: "email", required: true, attrs: []g.Node{h.AutoComplete("email")}}),
		input(st, fs, field{form: "apply", name: "company", labelKey: "apply.company", required: true, attrs: []g.Node{h.AutoComplete("organization")}}),
		selectField(st, fs, field{form: "apply", name: "stage", labelKey: "apply.stage", required: true}, stages),
		input(st, fs, field{form: "apply", name: "website", labelKey: "apply.website", kind: "url", attrs: []g.Node{h.Placeholder("https://")}}),
		textarea(st, fs, field{form: "apply", name: "pitch", labelKey: "apply.pitch", required: true}),
		h.Div(c.Classes{"field": true, "checkbox": true, "invalid": consentInvalid},
			g.El("label",
				h.Input(h.Type("checkbox"), h.ID("apply-consent"), h.Name("consent"), h.Value("on"),
					g.If(fs.value("consent") != "", h.Checked()),
				),
				g.Text(" "+st.T("apply.consent")),
			),
			g.If(consentInvalid, h.P(h.Class("field-error"), g.Text(fieldMessage(st, fs.Errors["consent"])))),
		),
		h.Button(h.Type("submit"), h.Class("btn"), g.Text(st.T("apply.submit"))),
	)
}

// NewsletterForm renders the footer subscription form.
func NewsletterForm(st *appctx.State, fs FormState) g.Node {
	return formShell(st, "newsletter-form", "/newsletter", fs,
		input(st, fs, field{form: "newsletter", name: "email", labelKey: "form.email", kind: "email", required: true, attrs: []g.Node{h.AutoComplete("email")}}),
		h.Button(h.Type("submit"), h.Class("btn"), g.Text(st.T("newsletter.subscribe"))),
	)
}
