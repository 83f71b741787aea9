package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kyber-portal/pkg/models"
)

func TestLoginPostsJSON(t *testing.T) {
	var got models.Credentials
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != LoginPath {
			t.Errorf("expected path %s, got %s", LoginPath, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Login successful"}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	resp, err := c.Login(context.Background(), models.Credentials{Username: "a", Password: "b"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !resp.Success || resp.Message != "Login successful" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if got.Username != "a" || got.Password != "b" {
		t.Fatalf("unexpected request body %+v", got)
	}
}

func TestRegisterFailureResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RegisterPath {
			t.Errorf("expected path %s, got %s", RegisterPath, r.URL.Path)
		}
		w.Write([]byte(`{"success":false,"message":"Username already exists"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Register(context.Background(), models.Credentials{Username: "a", Password: "b"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Success || resp.Message != "Username already exists" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestRemoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		is      error
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false}`))
			},
			is: ErrUnexpectedStatus,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>not json</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(srv.URL).Login(context.Background(), models.Credentials{Username: "a", Password: "b"})
			var remote *RemoteError
			if !errors.As(err, &remote) {
				t.Fatalf("expected RemoteError, got %v", err)
			}
			if remote.Endpoint != LoginPath {
				t.Errorf("expected endpoint %s, got %s", LoginPath, remote.Endpoint)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected %v in chain, got %v", tt.is, err)
			}
		})
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Register(context.Background(), models.Credentials{Username: "a", Password: "b"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Error() != remote.Err.Error() {
		t.Fatalf("RemoteError should read as its cause")
	}
}

func TestWithTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).Login(context.Background(), models.Credentials{Username: "a", Password: "b"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError on timeout, got %v", err)
	}
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{}
	c := New("http://example.test", WithHTTPClient(shared), WithTimeout(time.Second))
	if shared.Timeout != 0 {
		t.Fatalf("shared client was modified: timeout %v", shared.Timeout)
	}
	if c.httpClient == shared || c.httpClient.Timeout != time.Second {
		t.Fatalf("expected a copied client with the timeout, got %+v", c.httpClient)
	}

	// Option order does not matter and a nil client falls back to a default.
	c = New("http://example.test", WithTimeout(time.Second), WithHTTPClient(nil))
	if c.httpClient == nil || c.httpClient.Timeout != time.Second {
		t.Fatalf("unexpected client %+v", c.httpClient)
	}
}
