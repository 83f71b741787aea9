package handlers

import (
	"log"
	"net/http"
	"time"

	"kyber-portal/pkg/feedback"
	"kyber-portal/pkg/form"
	"kyber-portal/templates"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	forms *form.Handler
}

// New creates a new Handlers instance
func New(forms *form.Handler) *Handlers {
	return &Handlers{forms: forms}
}

// ============== Page Handlers ==============

// LoginPage renders the empty login form
func (h *Handlers) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, templates.LoginPage(templates.PageView{}))
}

// SignupPage renders the empty signup form
func (h *Handlers) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, templates.SignupPage(h.view(nil)))
}

// ============== Submit Handlers ==============

// SubmitLogin handles a POST of the login form
func (h *Handlers) SubmitLogin(c *gin.Context) {
	p := newPageState(c)
	out := h.forms.HandleLogin(c.Request.Context(), p.page())
	logOutcome(out)
	render(c, statusFor(out), templates.LoginPage(p.view(h.view)))
}

// SubmitSignup handles a POST of the signup form
func (h *Handlers) SubmitSignup(c *gin.Context) {
	p := newPageState(c)
	out := h.forms.HandleSignup(c.Request.Context(), p.page())
	logOutcome(out)
	render(c, statusFor(out), templates.SignupPage(p.view(h.view)))
}

// NativeSubmit is what the browser would do with an unhandled form
// post: reload the page. It only runs when a submit handler did not
// prevent it.
func NativeSubmit(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
}

// Health reports that the portal is up
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"strategy": h.forms.Strategy().String(),
	})
}

func (h *Handlers) view(msgs []feedback.Message) templates.PageView {
	return templates.PageView{
		Messages:    msgs,
		LocalSignup: h.forms.Strategy() == form.Local,
	}
}

// statusFor maps an outcome to the status of the re-rendered page.
func statusFor(out form.Outcome) int {
	if out.State == form.Rejected {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func logOutcome(out form.Outcome) {
	if out.Err != nil {
		log.Printf("%s submission %s %s: %v", out.Form, out.ID, out.State, out.Err)
		return
	}
	log.Printf("%s submission %s %s", out.Form, out.ID, out.State)
}

// render renders a templ component
func render(c *gin.Context, status int, template templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := template.Render(c.Request.Context(), c.Writer); err != nil {
		c.String(http.StatusInternalServerError, "Template rendering error")
	}
}

// ============== Page Adapters ==============

// pageState is the per-request stand-in for the browser page: it reads
// the posted fields, collects feedback and turns a scheduled navigation
// into a client-side refresh.
type pageState struct {
	c        *gin.Context
	sink     feedback.Recorder
	redirect *templates.Redirect
	delay    time.Duration
}

func newPageState(c *gin.Context) *pageState {
	return &pageState{c: c}
}

func (p *pageState) page() form.Page {
	return form.Page{
		Event:     p,
		Fields:    p,
		Sink:      &p.sink,
		Navigator: p,
		Scheduler: p,
	}
}

// PreventDefault keeps the trailing native submit handler from running.
func (p *pageState) PreventDefault() {
	p.c.Abort()
}

func (p *pageState) Field(name string) string {
	return p.c.PostForm(name)
}

// AfterFunc records the delay and runs f now; the browser waits instead.
func (p *pageState) AfterFunc(d time.Duration, f func()) {
	p.delay = d
	f()
}

func (p *pageState) Navigate(target string) {
	p.redirect = &templates.Redirect{URL: target, Seconds: p.delay.Seconds()}
}

func (p *pageState) view(base func([]feedback.Message) templates.PageView) templates.PageView {
	v := base(p.sink.Messages)
	v.Redirect = p.redirect
	return v
}
