package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func imagePartJSON(data []byte) string {
	return fmt.Sprintf(`{"inlineData":{"mimeType":"image/png","data":"%s"}}`,
		base64.StdEncoding.EncodeToString(data))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestEditImageSendsMaskAndAspectRatio(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[%s]}}]}`, imagePartJSON([]byte("edited")))
	})

	res, err := c.EditImage(context.Background(), EditRequest{
		Image:       []byte("source"),
		MIME:        "image/jpeg",
		Mask:        []byte("mask"),
		Instruction: "remove the watermark",
		AspectRatio: "4:3",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("edited"), res.Image)
	assert.Equal(t, "image/png", res.MIME)

	require.Len(t, got.Contents, 1)
	parts := got.Contents[0].Parts
	require.Len(t, parts, 3)
	assert.Equal(t, "remove the watermark", parts[0].Text)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MimeType)
	assert.Equal(t, "image/png", parts[2].InlineData.MimeType)
	require.NotNil(t, got.GenerationConfig)
	require.NotNil(t, got.GenerationConfig.ImageConfig)
	assert.Equal(t, "4:3", got.GenerationConfig.ImageConfig.AspectRatio)
}

func TestEditImageOmitsMaskWhenAbsent(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[%s]}}]}`, imagePartJSON([]byte("edited")))
	})

	_, err := c.EditImage(context.Background(), EditRequest{
		Image:       []byte("source"),
		MIME:        "image/png",
		Instruction: "remove the watermark",
	})
	require.NoError(t, err)
	require.Len(t, got.Contents[0].Parts, 2)
}

func TestEditImageFirstImagePartWins(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[%s,%s]}}]}`,
			imagePartJSON([]byte("first")), imagePartJSON([]byte("second")))
	})

	res, err := c.EditImage(context.Background(), EditRequest{
		Image: []byte("source"), MIME: "image/png", Instruction: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), res.Image)
}

func TestEditImageRefusalIsDistinctCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"I cannot remove watermarks from copyrighted material."}]}}]}`)
	})

	_, err := c.EditImage(context.Background(), EditRequest{
		Image: []byte("source"), MIME: "image/png", Instruction: "x",
	})
	require.Error(t, err)
	assert.True(t, IsRefusal(err), "expected refusal category, got %v", err)

	var refusal *RefusalError
	require.ErrorAs(t, err, &refusal)
	assert.Contains(t, refusal.Detail, "copyrighted")
}

func TestEditImageNoImageIsGenericFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"Here is a description of the image instead."}]}}]}`)
	})

	_, err := c.EditImage(context.Background(), EditRequest{
		Image: []byte("source"), MIME: "image/png", Instruction: "x",
	})
	require.ErrorIs(t, err, ErrNoImage)
	assert.False(t, IsRefusal(err))
}

func TestEditImageSurfacesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := c.EditImage(context.Background(), EditRequest{
		Image: []byte("source"), MIME: "image/png", Instruction: "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "API key not valid")
}
