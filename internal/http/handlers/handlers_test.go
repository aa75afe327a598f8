package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/http/middleware"
	"github.com/pribylovaa/go-qa-service/internal/models"
)

func TestBind(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name      string
		body      string
		wantEmail string
		wantErr   bool
	}{
		{name: "normalised", body: `{"email":"  User@Example.COM ","password":"pw"}`, wantEmail: "user@example.com"},
		{name: "unknown_field", body: `{"email":"a@b.c","password":"pw","admin":true}`, wantErr: true},
		{name: "syntax", body: `{"email":`, wantErr: true},
		{name: "empty_body", body: ``, wantErr: true},
		{name: "wrong_type", body: `{"email":1}`, wantErr: true},
		{name: "bad_email", body: `{"email":"nope","password":"pw"}`, wantErr: true},
		{name: "missing_email", body: `{"password":"pw"}`, wantErr: true},
		{name: "trailing_whitespace", body: "{\"email\":\"a@b.co\",\"password\":\"pw\"}\n\t ", wantEmail: "a@b.co"},
		{name: "trailing_garbage", body: `{"email":"a@b.co","password":"pw"}garbage`, wantErr: true},
		{name: "trailing_object", body: `{"email":"a@b.co","password":"pw"}{}`, wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tc.body))

			var in credentialsRequest
			err := bind(httptest.NewRecorder(), req, &in)
			if tc.wantErr {
				require.Error(t, err)
				require.Equal(t, apierrors.KindValidation, apierrors.Classify(err))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantEmail, in.Email)
		})
	}
}

func TestBind_BodyTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `","content":"c"}`
	req := httptest.NewRequest(http.MethodPost, "/questions", strings.NewReader(body))

	var in questionRequest
	err := bind(httptest.NewRecorder(), req, &in)
	require.Equal(t, apierrors.KindValidation, apierrors.Classify(err))
}

func TestBind_QuestionTitleLength(t *testing.T) {
	t.Parallel()

	bindTitle := func(title string) error {
		body := `{"title":"` + title + `","content":"c"}`
		req := httptest.NewRequest(http.MethodPost, "/questions", strings.NewReader(body))

		var in questionRequest
		return bind(httptest.NewRecorder(), req, &in)
	}

	// Колонка title — VARCHAR(255), длина считается в символах.
	require.NoError(t, bindTitle(strings.Repeat("я", 255)))

	err := bindTitle(strings.Repeat("a", 256))
	require.Error(t, err)
	require.Equal(t, apierrors.KindValidation, apierrors.Classify(err))
}

func TestBind_QuestionTagsTrimmed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"title":" T ","content":" C ","tags":[" go ","db"]}`))

	var in questionRequest
	require.NoError(t, bind(httptest.NewRecorder(), req, &in))
	require.Equal(t, models.NewQuestion{Title: "T", Content: "C", Tags: []string{"go", "db"}}, in.toModel())
}

func TestPathID(t *testing.T) {
	t.Parallel()

	withParam := func(v string) *http.Request {
		rc := chi.NewRouteContext()
		rc.URLParams.Add("id", v)
		req := httptest.NewRequest(http.MethodGet, "/questions/"+v, nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	}

	id, err := pathID(withParam("42"), "id")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	for _, bad := range []string{"abc", "0", "-3", ""} {
		_, err := pathID(withParam(bad), "id")
		require.Equal(t, apierrors.KindValidation, apierrors.Classify(err), bad)
	}
}

func TestAccountID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/accounts/me", nil)
	_, err := accountID(req)
	require.Equal(t, apierrors.KindMissingCredential, apierrors.Classify(err))

	req = req.WithContext(middleware.WithSession(req.Context(), models.Session{AccountID: 5}))
	id, err := accountID(req)
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
}
