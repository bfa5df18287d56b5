package eventorder

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/middleware"
	"github.com/tair/nutribakery/pkg/upload"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestCreateHandlerMatchesProductImages(t *testing.T) {
	images, err := upload.NewStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	store := &memoryStore{}
	h := NewHandler(NewService(store, &recordingMailer{}), images)
	router := mux.NewRouter()
	h.RegisterRoutes(router, middleware.Guard{})

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, value := range map[string]string{
		"name":      "Kim",
		"email":     "kim@example.com",
		"eventType": "Birthday",
		"date":      "2026-11-02",
		"products":  `[{"product":"Cake","quantity":1},{"product":"Cookies","quantity":24}]`,
	} {
		require.NoError(t, w.WriteField(field, value))
	}
	part, err := w.CreateFormFile("products[image]", "cake.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/eventorder/eventorder", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, store.orders, 1)
	products := store.orders[0].Products
	require.Len(t, products, 2)
	assert.True(t, strings.HasPrefix(products[0].Image, "http://localhost:8080/uploads/"))
	assert.Empty(t, products[1].Image)
	assert.Empty(t, store.orders[0].Images)
}

func TestCreateHandlerRejectsBadProductsJSON(t *testing.T) {
	images, err := upload.NewStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	router := mux.NewRouter()
	NewHandler(NewService(&memoryStore{}, &recordingMailer{}), images).RegisterRoutes(router, middleware.Guard{})

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("products", "{not json"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/eventorder/eventorder", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
