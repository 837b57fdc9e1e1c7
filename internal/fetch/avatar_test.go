package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Nowhitestar/process-builder-data/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestUnavatarFetch(t *testing.T) {
	cfg, _ := config.Load()
	client := NewUnavatarClient(cfg)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/twitter/ethereum" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("pngbytes")),
				Header:     make(http.Header),
			}, nil
		}),
	}

	blob, err := client.Fetch(context.Background(), "ethereum")
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "pngbytes" {
		t.Fatalf("got %q", blob)
	}
}

func TestUnavatarFetchNon200(t *testing.T) {
	cfg, _ := config.Load()
	client := NewUnavatarClient(cfg)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(strings.NewReader("not found")),
				Header:     make(http.Header),
			}, nil
		}),
	}

	if _, err := client.Fetch(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error")
	}
}

func TestUnavatarFetchEmptyHandle(t *testing.T) {
	cfg, _ := config.Load()
	client := NewUnavatarClient(cfg)
	if _, err := client.Fetch(context.Background(), ""); err == nil {
		t.Fatal("expected error")
	}
}
