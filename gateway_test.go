package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlanticGateway_CreatePayment(t *testing.T) {
	// Arrange
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/deposit/create", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"api_key": r.PostFormValue("api_key"),
			"reff_id": r.PostFormValue("reff_id"),
			"nominal": r.PostFormValue("nominal"),
			"type":    r.PostFormValue("type"),
			"metode":  r.PostFormValue("metode"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"data":{"id":77001,"qr_string":"00020101021226"}}`))
	}))
	defer server.Close()

	gateway := NewAtlanticGateway(server.URL, "secret-key", 5*time.Second)

	// Act
	payment, err := gateway.CreatePayment(context.Background(), "AA11BB22CC", 31500)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "77001", payment.ID)
	assert.Equal(t, "00020101021226", payment.QRString)
	assert.Equal(t, map[string]string{
		"api_key": "secret-key",
		"reff_id": "AA11BB22CC",
		"nominal": "31500",
		"type":    "ewallet",
		"metode":  "qrisfast",
	}, gotForm)
}

func TestAtlanticGateway_CreatePayment_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":false,"message":"saldo tidak cukup"}`))
	}))
	defer server.Close()

	gateway := NewAtlanticGateway(server.URL, "secret-key", 5*time.Second)

	_, err := gateway.CreatePayment(context.Background(), "AA11BB22CC", 31500)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateway)
	assert.Contains(t, err.Error(), "saldo tidak cukup")
}

func TestAtlanticGateway_CreatePayment_MissingQRString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"data":{"id":77001}}`))
	}))
	defer server.Close()

	gateway := NewAtlanticGateway(server.URL, "secret-key", 5*time.Second)

	_, err := gateway.CreatePayment(context.Background(), "AA11BB22CC", 31500)

	assert.ErrorIs(t, err, ErrGateway)
}

func TestAtlanticGateway_CreatePayment_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := NewAtlanticGateway(server.URL, "secret-key", 5*time.Second)

	_, err := gateway.CreatePayment(context.Background(), "AA11BB22CC", 31500)

	assert.ErrorIs(t, err, ErrGateway)
}

func TestAtlanticGateway_CheckStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deposit/status", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "77001", r.PostFormValue("id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"data":{"status":"paid"}}`))
	}))
	defer server.Close()

	gateway := NewAtlanticGateway(server.URL, "secret-key", 5*time.Second)

	status, err := gateway.CheckStatus(context.Background(), "77001")

	require.NoError(t, err)
	assert.Equal(t, "paid", status)
}

func TestAtlanticGateway_CheckStatus_AmbiguousReadsAsPending(t *testing.T) {
	// Never assume success when the status field is missing
	tests := []struct {
		name string
		body string
	}{
		{name: "empty data", body: `{"status":true,"data":{}}`},
		{name: "no data", body: `{"status":true}`},
		{name: "unrelated fields", body: `{"status":true,"data":{"amount":31500}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gateway := NewAtlanticGateway(server.URL, "secret-key", 5*time.Second)

			status, err := gateway.CheckStatus(context.Background(), "77001")

			require.NoError(t, err)
			assert.Equal(t, GatewayStatusPending, status)
		})
	}
}

func TestAtlanticGateway_CheckStatus_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	gateway := NewAtlanticGateway(server.URL, "secret-key", time.Second)

	_, err := gateway.CheckStatus(context.Background(), "77001")

	assert.ErrorIs(t, err, ErrGateway)
}

func TestAtlanticGateway_CheckStatus_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := NewAtlanticGateway(server.URL, "secret-key", 5*time.Second)

	_, err := gateway.CheckStatus(context.Background(), "77001")

	assert.ErrorIs(t, err, ErrGateway)
}
