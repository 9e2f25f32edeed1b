package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "cheatsheets/internal/errors"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://raw.example.com/posts/", "https://api.example.com/icons", "agent/1.0", 0)
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "https://raw.example.com/posts" {
		t.Errorf("NewClient() BaseURL = %v, want trailing slash trimmed", client.BaseURL)
	}
	if got, want := client.DocumentURL("c++"), "https://raw.example.com/posts/c++.md"; got != want {
		t.Errorf("DocumentURL() = %v, want %v", got, want)
	}
}

func TestClient_FetchDocument(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		serverResp func(w http.ResponseWriter, r *http.Request)
		want       string
		wantErr    bool
	}{
		{
			name: "successful fetch",
			id:   "rust",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				if r.URL.Path != "/posts/rust.md" {
					t.Errorf("expected /posts/rust.md, got %s", r.URL.Path)
				}
				if ua := r.Header.Get("User-Agent"); ua != "agent/1.0" {
					t.Errorf("expected User-Agent agent/1.0, got %q", ua)
				}
				_, _ = w.Write([]byte("---\ntitle: Rust\n---\n"))
			},
			want: "---\ntitle: Rust\n---\n",
		},
		{
			name: "not found",
			id:   "missing",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "404: Not Found", http.StatusNotFound)
			},
			wantErr: true,
		},
		{
			name: "server error",
			id:   "rust",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL+"/posts", server.URL+"/icons", "agent/1.0", 0)
			got, err := client.FetchDocument(context.Background(), tt.id)

			if tt.wantErr {
				if err == nil {
					t.Fatal("FetchDocument() expected error, got nil")
				}
				if !errors.Is(err, apperrors.ErrFetch) {
					t.Errorf("FetchDocument() error = %v, want ErrFetch", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("FetchDocument() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FetchDocument() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_FetchDocument_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, server.URL, "", 0)
	_, err := client.FetchDocument(context.Background(), "rust")
	if !errors.Is(err, apperrors.ErrFetch) {
		t.Errorf("FetchDocument() error = %v, want ErrFetch", err)
	}
}

func TestClient_ListIcons(t *testing.T) {
	t.Run("successful listing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if accept := r.Header.Get("Accept"); accept != "application/vnd.github+json" {
				t.Errorf("expected GitHub JSON accept header, got %q", accept)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, server.URL+"/icons", "", 0)
		body, err := client.ListIcons(context.Background())
		if err != nil {
			t.Fatalf("ListIcons() unexpected error: %v", err)
		}
		if string(body) != "[]" {
			t.Errorf("ListIcons() = %q, want []", body)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.URL+"/icons", "", 0)
		_, err := client.ListIcons(context.Background())
		if !errors.Is(err, apperrors.ErrDirectory) {
			t.Errorf("ListIcons() error = %v, want ErrDirectory", err)
		}
	})
}
