package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestImageClientGenerate(t *testing.T) {
	var got imageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"url":"https://img.example.com/1.png"}]}`))
	}))
	defer srv.Close()

	c := NewImageClient(srv.URL, "key", "dall-e-3")
	url, err := c.Generate(context.Background(), "a cat")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if url != "https://img.example.com/1.png" {
		t.Fatalf("url = %q", url)
	}
	if got.Prompt != "a cat" || got.N != 1 || got.Model != "dall-e-3" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestImageClientEmptyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := NewImageClient(srv.URL, "", "").Generate(context.Background(), "x")
	if !errors.Is(err, ErrEmptyImageURL) {
		t.Fatalf("err = %v, want ErrEmptyImageURL", err)
	}
}

func TestImageClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"prompt rejected"}}`))
	}))
	defer srv.Close()

	_, err := NewImageClient(srv.URL, "", "").Generate(context.Background(), "x")
	if err == nil || err.Error() != "image service: prompt rejected" {
		t.Fatalf("err = %v", err)
	}
}

func TestImageClientDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	}))
	defer srv.Close()

	data, err := NewImageClient("", "", "").Download(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(data) != 4 {
		t.Fatalf("len = %d", len(data))
	}
}
