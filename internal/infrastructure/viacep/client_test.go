package viacep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/01001000/json/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","complemento":"lado ímpar","bairro":"Sé","localidade":"São Paulo","uf":"SP","ibge":"3550308","ddd":"11"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	result, err := client.Lookup(context.Background(), "01001000")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if result.NotFound {
		t.Fatalf("expected found result")
	}
	if result.Cep != "01001-000" || result.Street != "Praça da Sé" || result.City != "São Paulo" || result.State != "SP" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Neighborhood != "Sé" {
		t.Fatalf("unexpected neighborhood: %s", result.Neighborhood)
	}
}

func TestClient_Lookup_ErroFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	result, err := client.Lookup(context.Background(), "99999999")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if !result.NotFound {
		t.Fatalf("expected NotFound for erro flag")
	}
}

func TestClient_Lookup_ErroFlagAsString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": "true"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	result, err := client.Lookup(context.Background(), "99999999")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if !result.NotFound {
		t.Fatalf("expected NotFound for string erro flag")
	}
}

func TestClient_Lookup_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	result, err := client.Lookup(context.Background(), "not-a-cep")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if !result.NotFound {
		t.Fatalf("expected NotFound for 400 response")
	}
}

func TestClient_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	if _, err := client.Lookup(context.Background(), "01001000"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
