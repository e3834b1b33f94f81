package n8n

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbackend/clients"
	"chatbackend/models"
)

func testCommand() *models.DetectedCommand {
	return &models.DetectedCommand{
		Type:      "email",
		Action:    "sendEmail",
		Matches:   []string{"enviar correo a ana@example.com", "ana@example.com", ""},
		FullMatch: "enviar correo a ana@example.com",
	}
}

func testParams() models.CommandParams {
	return models.CommandParams{
		"destinatario": "ana@example.com",
		"titulo":       "No subject",
		"cuerpo":       "No subject",
		"comando":      "email",
	}
}

func testDispatchContext() models.DispatchContext {
	return models.DispatchContext{
		ChatID:   "ch_01G0EZ1XTM37C5X11SQTDNCTM1",
		ChatName: "Equipo",
		UserName: "Ana",
		UserID:   "u_01G0EZ1XTM37C5X11SQTDNCTM2",
	}
}

func TestDispatch(t *testing.T) {
	t.Run("Success_ParsesWebhookResponse", func(t *testing.T) {
		var receivedBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&receivedBody))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": true, "message": "Email sent", "data": {"details": "delivered to ana@example.com"}}`))
		}))
		defer server.Close()

		client := NewN8NClient(server.URL)
		result, err := client.Dispatch(context.Background(), testCommand(), testParams(), testDispatchContext())

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Email sent", result.Message)
		assert.Equal(t, "delivered to ana@example.com", result.Data["details"])

		// Request body carries command, action, params and context
		assert.Equal(t, "email", receivedBody["command"])
		assert.Equal(t, "sendEmail", receivedBody["action"])
		params := receivedBody["params"].(map[string]any)
		assert.Equal(t, "ana@example.com", params["destinatario"])
		dispatchCtx := receivedBody["context"].(map[string]any)
		assert.Equal(t, "ch_01G0EZ1XTM37C5X11SQTDNCTM1", dispatchCtx["chatId"])
		assert.NotEmpty(t, receivedBody["timestamp"])
	})

	t.Run("SuccessFalse_With2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": false, "error": {"message": "recipient rejected"}}`))
		}))
		defer server.Close()

		client := NewN8NClient(server.URL)
		result, err := client.Dispatch(context.Background(), testCommand(), testParams(), testDispatchContext())

		require.NoError(t, err, "2xx with success=false is not a DispatchError")
		assert.False(t, result.Success)
		assert.Equal(t, "recipient rejected", result.ErrorMessage)
	})

	t.Run("Non2xx_ReturnsDispatchError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"partial": "data that must not leak"}`))
		}))
		defer server.Close()

		client := NewN8NClient(server.URL)
		result, err := client.Dispatch(context.Background(), testCommand(), testParams(), testDispatchContext())

		require.Error(t, err)
		assert.Nil(t, result, "body of a non-2xx response must not be parsed")

		var dispatchErr *clients.DispatchError
		require.True(t, errors.As(err, &dispatchErr))
		assert.Equal(t, http.StatusInternalServerError, dispatchErr.StatusCode)
	})

	t.Run("TransportFailure_ReturnsDispatchError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		client := NewN8NClient(server.URL)
		result, err := client.Dispatch(context.Background(), testCommand(), testParams(), testDispatchContext())

		require.Error(t, err)
		assert.Nil(t, result)

		var dispatchErr *clients.DispatchError
		require.True(t, errors.As(err, &dispatchErr))
	})

	t.Run("MalformedBody_ReturnsDispatchError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewN8NClient(server.URL)
		_, err := client.Dispatch(context.Background(), testCommand(), testParams(), testDispatchContext())

		var dispatchErr *clients.DispatchError
		require.True(t, errors.As(err, &dispatchErr))
	})
}
