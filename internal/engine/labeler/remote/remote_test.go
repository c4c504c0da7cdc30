package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
)

func entityServer(t *testing.T, resp entityResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != entitiesPath {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		var req entityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Texts) != 1 {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestLabelConvertsMatches(t *testing.T) {
	text := "Acme Corp hired Maria Lopez."
	srv := entityServer(t, entityResponse{Texts: []responseRecord{{
		UUID: "0",
		Entities: []entity{
			{Name: "Acme Corp", Label: "ORG", Matches: []entityMatch{{Start: 0, End: 9, Text: "Acme Corp"}}},
			{Name: "Maria Lopez", Label: "PERSON", Matches: []entityMatch{{Start: 16, End: 27, Text: "Maria Lopez"}}},
		},
	}}})
	defer srv.Close()

	l, err := New(srv.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	spans, err := l.Label(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %v", spans)
	}
	if spans[0].Text != "Acme Corp" || spans[0].Label != "ORG" {
		t.Fatalf("span 0: expected Acme Corp/ORG, got %+v", spans[0])
	}
	if spans[1].Text != "Maria Lopez" || spans[1].Label != "PERSON" {
		t.Fatalf("span 1: expected Maria Lopez/PERSON, got %+v", spans[1])
	}
}

func TestLabelDropsOutOfBoundsMatches(t *testing.T) {
	text := "short"
	srv := entityServer(t, entityResponse{Texts: []responseRecord{{
		Entities: []entity{
			{Name: "ghost", Label: "ORG", Matches: []entityMatch{{Start: 10, End: 20, Text: "ghost"}}},
			{Name: "short", Label: "ORG", Matches: []entityMatch{{Start: 0, End: 5, Text: "short"}}},
		},
	}}})
	defer srv.Close()

	l, err := New(srv.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spans, err := l.Label(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 1 || spans[0].Text != "short" {
		t.Fatalf("expected only the in-bounds span, got %v", spans)
	}
}

func TestLabelClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	l, err := New(srv.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := l.Label(context.Background(), "text"); err == nil {
		t.Fatal("expected error from 4xx response")
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := New("", ""); !errors.Is(err, labeler.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without endpoint, got %v", err)
	}
}

func TestRegistered(t *testing.T) {
	ctor, err := labeler.Get("remote")
	if err != nil {
		t.Fatalf("remote kind not registered: %v", err)
	}
	if _, err := ctor(labeler.Config{}); err == nil {
		t.Fatal("expected constructor error without endpoint")
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entityResponse{})
	}))
	defer srv.Close()

	l, err := New(srv.URL, "sekrit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := l.Label(context.Background(), "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer sekrit" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
}
