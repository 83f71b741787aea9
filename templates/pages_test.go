package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"kyber-portal/pkg/feedback"
)

func renderString(t *testing.T, view PageView, signup bool) string {
	t.Helper()
	var buf bytes.Buffer
	component := LoginPage(view)
	if signup {
		component = SignupPage(view)
	}
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestLoginPageFields(t *testing.T) {
	html := renderString(t, PageView{}, false)
	for _, want := range []string{`id="loginForm"`, `name="username"`, `name="password"`, `<p id="message"></p>`} {
		if !strings.Contains(html, want) {
			t.Errorf("login page missing %s", want)
		}
	}
}

func TestSignupPageVariants(t *testing.T) {
	remote := renderString(t, PageView{}, true)
	if !strings.Contains(remote, `name="newUsername"`) || strings.Contains(remote, `name="dob"`) {
		t.Errorf("remote signup page has wrong fields")
	}

	local := renderString(t, PageView{LocalSignup: true}, true)
	for _, want := range []string{`name="name"`, `name="dob"`, `name="email"`, `name="username"`, `name="confirmPassword"`} {
		if !strings.Contains(local, want) {
			t.Errorf("local signup page missing %s", want)
		}
	}
}

func TestInlineMessageIsColoured(t *testing.T) {
	html := renderString(t, PageView{Messages: []feedback.Message{
		{Text: "Login failed: <bad> creds", Tone: feedback.Failure, Channel: feedback.Inline},
	}}, false)
	if !strings.Contains(html, `<p id="message" style="color: red">Login failed: &lt;bad&gt; creds</p>`) {
		t.Errorf("unexpected message markup:\n%s", html)
	}
}

func TestAlertAndRedirect(t *testing.T) {
	html := renderString(t, PageView{
		Messages: []feedback.Message{{Text: "Please fill in all fields.", Channel: feedback.Alert}},
		Redirect: &Redirect{URL: "/login", Seconds: 2},
	}, true)
	if !strings.Contains(html, `<div class="alert" role="alert">Please fill in all fields.</div>`) {
		t.Errorf("alert not rendered:\n%s", html)
	}
	if !strings.Contains(html, `<meta http-equiv="refresh" content="2;url=/login">`) {
		t.Errorf("redirect not rendered:\n%s", html)
	}
}

func TestRedirectAttributeIsEscaped(t *testing.T) {
	html := renderString(t, PageView{Redirect: &Redirect{URL: `/login?next="x"&a=1`, Seconds: 1.5}}, true)
	want := `<meta http-equiv="refresh" content="1.5;url=/login?next=&#34;x&#34;&amp;a=1">`
	if !strings.Contains(html, want) {
		t.Errorf("redirect attribute not escaped:\n%s", html)
	}
}

func TestMessageShowsLastInline(t *testing.T) {
	html := renderString(t, PageView{Messages: []feedback.Message{
		{Text: "first", Tone: feedback.Failure, Channel: feedback.Inline},
		{Text: "Login successful! You can now use the CLI.", Tone: feedback.Success, Channel: feedback.Inline},
		{Text: "an alert", Channel: feedback.Alert},
	}}, false)
	if strings.Contains(html, ">first<") {
		t.Errorf("stale inline message rendered:\n%s", html)
	}
	if !strings.Contains(html, `<p id="message" style="color: green">Login successful! You can now use the CLI.</p>`) {
		t.Errorf("last inline message missing:\n%s", html)
	}
}
