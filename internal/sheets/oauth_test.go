package sheets

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCallbackHandler(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantCode   string
		wantErr    string
		wantStatus int
	}{
		{
			name:       "code received",
			query:      "?state=abc&code=4/xyz",
			wantCode:   "4/xyz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "state mismatch",
			query:      "?state=evil&code=4/xyz",
			wantErr:    "state mismatch",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "user denied",
			query:      "?state=abc&error=access_denied",
			wantErr:    "access_denied",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing code",
			query:      "?state=abc",
			wantErr:    "no authorization code",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(chan callbackResult, 1)
			handler := callbackHandler("abc", results)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			res := <-results
			if tt.wantErr != "" {
				require.Error(t, res.err)
				assert.Contains(t, res.err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, res.err)
			assert.Equal(t, tt.wantCode, res.code)
		})
	}
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, SaveToken(path, token))
	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
