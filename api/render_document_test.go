package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Drolfothesgnir/stackmark/content"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
	"version": 1,
	"sections": [
		{"id": "a", "title": "A", "content": [{"type": "paragraph", "markdown": "*hi* :)"}]}
	]
}`

func TestRenderDocument(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		body          string
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: testDocument,
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var out content.RenderedDocument
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&out))
				require.Len(t, out.Sections, 1)
				require.Equal(t, "<p><em>hi</em> :)</p>", out.Sections[0].HTML)
				require.Equal(t, "A", out.Sections[0].Title)
			},
		},
		{
			name:  "EmojiAndCommonMark",
			query: "?backend=commonmark&emoji=true",
			body:  testDocument,
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var out content.RenderedDocument
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&out))
				require.Equal(t, "<p><em>hi</em> 🙂</p>", out.Sections[0].HTML)
			},
		},
		{
			name:  "InvalidBackend",
			query: "?backend=regex",
			body:  testDocument,
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				resp, err := extractErrorFromBuffer(recorder.Body)
				require.NoError(t, err)
				require.Equal(t, "backend", resp.Fields[0].FieldName)
			},
		},
		{
			name: "InvalidDocument",
			body: `{"version": 3, "sections": []}`,
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				resp, err := extractErrorFromBuffer(recorder.Body)
				require.NoError(t, err)
				require.Equal(t, ErrInvalidDocument.Error(), resp.Error)
				require.Len(t, resp.Fields, 1)
			},
		},
		{
			name: "TooLarge",
			body: `{"version": 1, "sections": [{"id": "a", "content": [{"type": "paragraph", "markdown": "` +
				strings.Repeat("a", testConfig.MaxInputBytes) + `"}]}]}`,
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := newTestService(t, testConfig, nil)
			recorder := httptest.NewRecorder()

			request, err := http.NewRequest(http.MethodPost, DocumentRenderURL+tc.query, strings.NewReader(tc.body))
			require.NoError(t, err)
			request.Header.Set("Content-Type", "application/json")

			service.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}
