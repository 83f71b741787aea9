package form

import (
	"context"
	"errors"
	"time"

	"kyber-portal/pkg/feedback"
	"kyber-portal/pkg/models"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// User-visible messages.
const (
	MsgLoginMissing       = "Please fill in both username and password."
	MsgSignupMissing      = "Please fill in all fields."
	MsgPasswordMismatch   = "Passwords do not match."
	MsgLoginSucceeded     = "Login successful! You can now use the CLI."
	MsgLoginFailed        = "Login failed: "
	MsgSignupSucceeded    = "Account created successfully! You can now use the CLI."
	MsgSignupFailed       = "Registration failed: "
	MsgRemoteError        = "Error: "
	MsgLocalLoginRecorded = "Login successful!"
	MsgLocalSignupCreated = "Account created successfully!"
)

const (
	DefaultRedirectDelay = 2 * time.Second
	DefaultLoginPage     = "/login"
)

// Form names used in outcomes and dedupe keys.
const (
	LoginForm  = "login"
	SignupForm = "signup"
)

// API is the backend the remote strategy submits to
type API interface {
	Login(ctx context.Context, creds models.Credentials) (*models.APIResponse, error)
	Register(ctx context.Context, creds models.Credentials) (*models.APIResponse, error)
}

// Event is the submit event of a form
type Event interface {
	// PreventDefault stops the native form submission.
	PreventDefault()
}

// FieldReader reads named form fields. Missing fields read as "".
type FieldReader interface {
	Field(name string) string
}

// Fields is a FieldReader over a plain map
type Fields map[string]string

func (f Fields) Field(name string) string { return f[name] }

// Navigator moves the page to another location
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Page bundles what a single submit writes to. Scheduler may be nil, in
// which case the handler's scheduler is used.
type Page struct {
	Event     Event
	Fields    FieldReader
	Sink      feedback.Sink
	Navigator Navigator
	Scheduler Scheduler
}

// Outcome describes how a submission ended
type Outcome struct {
	ID      string
	Form    string
	State   State
	Message feedback.Message
	// Err is the ValidationError or remote error behind a Rejected or
	// Failed outcome.
	Err error
	// RedirectTo is set when navigation was scheduled.
	RedirectTo    string
	RedirectDelay time.Duration
}

// Option configures a Handler
type Option func(*Handler)

// WithAPI sets the backend used by the remote strategy
func WithAPI(api API) Option {
	return func(h *Handler) { h.api = api }
}

// WithScheduler replaces the timer used for delayed navigation
func WithScheduler(s Scheduler) Option {
	return func(h *Handler) { h.scheduler = s }
}

// WithRedirectDelay sets the pause between a successful registration and
// the move to the login page
func WithRedirectDelay(d time.Duration) Option {
	return func(h *Handler) { h.redirectDelay = d }
}

// WithLoginPage sets the navigation target after registration
func WithLoginPage(target string) Option {
	return func(h *Handler) { h.loginPage = target }
}

// WithInFlightDedupe makes concurrent identical submissions share one
// backend call instead of racing.
func WithInFlightDedupe(enabled bool) Option {
	return func(h *Handler) {
		if enabled {
			h.inflight = &singleflight.Group{}
		} else {
			h.inflight = nil
		}
	}
}

// WithStateHook registers a function observing every state transition
func WithStateHook(fn func(id string, s State)) Option {
	return func(h *Handler) { h.onState = fn }
}

// Handler runs the login and signup submission flow
type Handler struct {
	strategy      Strategy
	api           API
	scheduler     Scheduler
	redirectDelay time.Duration
	loginPage     string
	inflight      *singleflight.Group
	onState       func(id string, s State)
	// joined, when set, runs once a caller is attached to an in-flight call.
	joined func(key string)
}

// New creates a Handler. The remote strategy requires WithAPI.
func New(strategy Strategy, opts ...Option) *Handler {
	h := &Handler{
		strategy:      strategy,
		scheduler:     timerScheduler{},
		redirectDelay: DefaultRedirectDelay,
		loginPage:     DefaultLoginPage,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Strategy returns the configured submission strategy
func (h *Handler) Strategy() Strategy {
	return h.strategy
}

// HandleLogin handles a submit of the login form
func (h *Handler) HandleLogin(ctx context.Context, page Page) Outcome {
	sub := h.begin(LoginForm, page)
	page = sub.page
	in := models.LoginSubmission{
		Username: page.Fields.Field(models.FieldUsername),
		Password: page.Fields.Field(models.FieldPassword),
	}

	if err := check(in); err != nil {
		// The login page always raised this one as an alert.
		return sub.reject(err, feedback.Message{Text: MsgLoginMissing, Tone: feedback.Failure, Channel: feedback.Alert})
	}

	if h.strategy == Local {
		return sub.succeed(feedback.Message{Text: MsgLocalLoginRecorded, Tone: feedback.Success, Channel: feedback.Alert})
	}

	sub.transition(Submitting)
	resp, err := h.call(ctx, LoginForm, in.Credentials())
	if err != nil {
		return sub.fail(err, inline(feedback.Failure, MsgRemoteError+err.Error()))
	}
	if !resp.Success {
		return sub.fail(nil, inline(feedback.Failure, MsgLoginFailed+resp.Message))
	}
	return sub.succeed(inline(feedback.Success, MsgLoginSucceeded))
}

// HandleSignup handles a submit of the signup form. Which fields it reads
// depends on the strategy.
func (h *Handler) HandleSignup(ctx context.Context, page Page) Outcome {
	sub := h.begin(SignupForm, page)
	page = sub.page

	if h.strategy == Local {
		in := models.LocalSignupSubmission{
			Name:            page.Fields.Field(models.FieldName),
			DOB:             page.Fields.Field(models.FieldDOB),
			Email:           page.Fields.Field(models.FieldEmail),
			Username:        page.Fields.Field(models.FieldUsername),
			Password:        page.Fields.Field(models.FieldPassword),
			ConfirmPassword: page.Fields.Field(models.FieldConfirmPassword),
		}
		if err := check(in); err != nil {
			return sub.reject(err, alert(feedback.Failure, signupRejection(err)))
		}
		return sub.succeed(alert(feedback.Success, MsgLocalSignupCreated))
	}

	in := models.SignupSubmission{
		Username:        page.Fields.Field(models.FieldNewUsername),
		Password:        page.Fields.Field(models.FieldNewPassword),
		ConfirmPassword: page.Fields.Field(models.FieldConfirmPassword),
	}
	if err := check(in); err != nil {
		return sub.reject(err, inline(feedback.Failure, signupRejection(err)))
	}

	sub.transition(Submitting)
	resp, err := h.call(ctx, SignupForm, in.Credentials())
	if err != nil {
		return sub.fail(err, inline(feedback.Failure, MsgRemoteError+err.Error()))
	}
	if !resp.Success {
		return sub.fail(nil, inline(feedback.Failure, MsgSignupFailed+resp.Message))
	}

	out := sub.succeed(inline(feedback.Success, MsgSignupSucceeded))
	if page.Navigator != nil {
		sched := page.Scheduler
		if sched == nil {
			sched = h.scheduler
		}
		target := h.loginPage
		sched.AfterFunc(h.redirectDelay, func() { page.Navigator.Navigate(target) })
		out.RedirectTo = target
		out.RedirectDelay = h.redirectDelay
	}
	return out
}

// call invokes the backend, sharing the call between identical
// concurrent submissions when dedupe is on. A shared call outlives the
// caller that started it; each caller stops waiting when its own ctx ends.
func (h *Handler) call(ctx context.Context, form string, creds models.Credentials) (*models.APIResponse, error) {
	if h.api == nil {
		return nil, ErrNoBackend
	}
	fn := h.api.Login
	if form == SignupForm {
		fn = h.api.Register
	}
	if h.inflight == nil {
		return fn(ctx, creds)
	}

	key := form + "\x00" + creds.Username + "\x00" + creds.Password
	shared := context.WithoutCancel(ctx)
	ch := h.inflight.DoChan(key, func() (interface{}, error) {
		return fn(shared, creds)
	})
	if h.joined != nil {
		h.joined(key)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		resp := *res.Val.(*models.APIResponse)
		return &resp, nil
	}
}

func signupRejection(err error) string {
	if errors.Is(err, ErrPasswordMismatch) {
		return MsgPasswordMismatch
	}
	return MsgSignupMissing
}

func inline(tone feedback.Tone, text string) feedback.Message {
	return feedback.Message{Text: text, Tone: tone, Channel: feedback.Inline}
}

func alert(tone feedback.Tone, text string) feedback.Message {
	return feedback.Message{Text: text, Tone: tone, Channel: feedback.Alert}
}

// submission tracks one pass through the state machine
type submission struct {
	h    *Handler
	page Page
	out  Outcome
}

func (h *Handler) begin(form string, page Page) *submission {
	if page.Event != nil {
		page.Event.PreventDefault()
	}
	if page.Fields == nil {
		page.Fields = Fields{}
	}
	if page.Sink == nil {
		page.Sink = feedback.SinkFunc(func(feedback.Message) {})
	}
	s := &submission{
		h:    h,
		page: page,
		out:  Outcome{ID: uuid.NewString(), Form: form, State: Idle},
	}
	s.transition(Validating)
	return s
}

func (s *submission) transition(to State) {
	s.out.State = to
	if s.h.onState != nil {
		s.h.onState(s.out.ID, to)
	}
}

func (s *submission) finish(to State, err error, msg feedback.Message) Outcome {
	s.out.Err = err
	s.out.Message = msg
	s.page.Sink.Show(msg)
	s.transition(to)
	return s.out
}

func (s *submission) reject(err error, msg feedback.Message) Outcome {
	return s.finish(Rejected, err, msg)
}

func (s *submission) fail(err error, msg feedback.Message) Outcome {
	return s.finish(Failed, err, msg)
}

func (s *submission) succeed(msg feedback.Message) Outcome {
	return s.finish(Succeeded, nil, msg)
}
