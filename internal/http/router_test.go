package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-qa-service/internal/hasher"
	"github.com/pribylovaa/go-qa-service/internal/models"
	"github.com/pribylovaa/go-qa-service/internal/service"
	"github.com/pribylovaa/go-qa-service/internal/storage"
	"github.com/pribylovaa/go-qa-service/internal/token"
	"github.com/pribylovaa/go-qa-service/mocks"
)

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type errEnvelope struct {
	Error apiError `json:"error"`
}

type testEnv struct {
	h     http.Handler
	st    *mocks.MockStorage
	codec *token.Codec
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	st := mocks.NewMockStorage(gomock.NewController(t))

	codec, err := token.NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	svc := service.New(st, hasher.New(hasher.Params{Memory: 1024, Time: 1, Threads: 1}), codec)
	h := NewRouter(svc, codec, Options{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout:        time.Second,
		AllowedOrigins: []string{"*"},
	})

	return &testEnv{h: h, st: st, codec: codec}
}

func (e *testEnv) do(t *testing.T, method, path, body, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)

	return rr
}

func errCode(t *testing.T, rr *httptest.ResponseRecorder) apiError {
	t.Helper()
	var out errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out.Error
}

func (e *testEnv) bearer(t *testing.T, id int64) string {
	t.Helper()
	tok, err := e.codec.Issue(token.NewSession(id, time.Now()))
	require.NoError(t, err)
	return "Bearer " + tok
}

// Регистрация, вход, неверный пароль, запрос без заголовка.
func TestScenario_RegisterLogin(t *testing.T) {
	e := newEnv(t)

	var stored *models.Account
	e.st.EXPECT().AddAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Account) (int64, error) {
			cp := *a
			cp.ID = 1
			stored = &cp
			return 1, nil
		})

	rr := e.do(t, http.MethodPost, "/registration", `{"email":"Alice@Example.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var reg struct {
		Account models.AccountInfo `json:"account"`
		Token   string             `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reg))
	require.Equal(t, models.AccountInfo{ID: 1, Email: "alice@example.com"}, reg.Account)
	require.NotEmpty(t, reg.Token)

	e.st.EXPECT().AccountByEmail(gomock.Any(), "alice@example.com").
		DoAndReturn(func(context.Context, string) (*models.Account, error) { return stored, nil }).
		Times(2)

	rr = e.do(t, http.MethodPost, "/login", `{"email":"alice@example.com","password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))

	s, err := e.codec.Validate(login.Token, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), s.AccountID)

	rr = e.do(t, http.MethodPost, "/login", `{"email":"alice@example.com","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "wrong_secret", errCode(t, rr).Code)
	require.Equal(t, "Wrong E-Mail/Password combination", errCode(t, rr).Message)

	rr = e.do(t, http.MethodPost, "/questions", `{"title":"t","content":"c"}`, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "missing_credential", errCode(t, rr).Code)
	require.NotEmpty(t, errCode(t, rr).RequestID)
}

func TestRegister_DuplicateAndEmptyPassword(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().AddAccount(gomock.Any(), gomock.Any()).Return(int64(0), storage.ErrAlreadyExists)

	rr := e.do(t, http.MethodPost, "/registration", `{"email":"a@b.co","password":"pw"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Equal(t, "duplicate_resource", errCode(t, rr).Code)

	rr = e.do(t, http.MethodPost, "/registration", `{"email":"a@b.co","password":""}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Equal(t, "validation_error", errCode(t, rr).Code)
}

func TestQuestions_CRUD(t *testing.T) {
	e := newEnv(t)
	auth := e.bearer(t, 5)

	e.st.EXPECT().AddQuestion(gomock.Any(), models.NewQuestion{Title: "t", Content: "c", Tags: []string{"go"}}, int64(5)).
		Return(&models.Question{ID: 9, Title: "t", Content: "c", Tags: []string{"go"}}, nil)

	rr := e.do(t, http.MethodPost, "/questions", `{"title":"t","content":"c","tags":["go"]}`, auth)
	require.Equal(t, http.StatusCreated, rr.Code)

	e.st.EXPECT().Questions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Pagination) ([]models.Question, error) {
			require.NotNil(t, p.Limit)
			require.Equal(t, 1, *p.Limit)
			require.Equal(t, 0, p.Offset)
			return nil, nil
		})

	rr = e.do(t, http.MethodGet, "/questions?limit=1&offset=0", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[]`, rr.Body.String())

	e.st.EXPECT().IsQuestionOwner(gomock.Any(), int64(9), int64(5)).Return(true, nil)
	e.st.EXPECT().DeleteQuestion(gomock.Any(), int64(9), int64(5)).Return(nil)

	rr = e.do(t, http.MethodDelete, "/questions/9", "", auth)
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestQuestions_NotOwner(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().IsQuestionOwner(gomock.Any(), int64(9), int64(6)).Return(false, nil)

	rr := e.do(t, http.MethodPut, "/questions/9", `{"title":"t","content":"c"}`, e.bearer(t, 6))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "unauthorized", errCode(t, rr).Code)
}

func TestAnswers_AddToMissingQuestion(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().AddAnswer(gomock.Any(), models.NewAnswer{Content: "a", QuestionID: 404}, int64(5)).
		Return(nil, storage.ErrNotFound)

	rr := e.do(t, http.MethodPost, "/answers", `{"content":"a","question_id":404}`, e.bearer(t, 5))
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Equal(t, "storage_failure", errCode(t, rr).Code)
}

func TestAccounts_Me(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().AccountByID(gomock.Any(), int64(5)).
		Return(&models.Account{ID: 5, Email: "a@b.co", PasswordHash: "secret-hash"}, nil)

	rr := e.do(t, http.MethodGet, "/accounts/me", "", e.bearer(t, 5))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"id":5,"email":"a@b.co"}`, rr.Body.String())
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := newEnv(t)

	tok, err := e.codec.Issue(token.NewSession(5, time.Now().Add(-token.Lifetime-time.Minute)))
	require.NoError(t, err)

	rr := e.do(t, http.MethodGet, "/accounts/me", "", "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "invalid_credential", errCode(t, rr).Code)
}

func TestRouting_Fallbacks(t *testing.T) {
	e := newEnv(t)

	tcs := []struct {
		name   string
		method string
		path   string
		status int
		code   string
	}{
		{"unknown_route", http.MethodGet, "/nope", http.StatusNotFound, "route_not_found"},
		{"method_not_allowed", http.MethodPatch, "/questions", http.StatusNotFound, "route_not_found"},
		{"half_pagination", http.MethodGet, "/questions?limit=1", http.StatusUnprocessableEntity, "validation_error"},
		{"bad_path_id", http.MethodGet, "/questions/abc/answers", http.StatusUnprocessableEntity, "validation_error"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rr := e.do(t, tc.method, tc.path, "", "")
			require.Equal(t, tc.status, rr.Code)
			require.Equal(t, tc.code, errCode(t, rr).Code)
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
