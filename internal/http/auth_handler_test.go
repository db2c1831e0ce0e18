package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postJSON(env *testEnv, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

const registerBody = `{
	"email": "ada@example.com",
	"password": "pass-123",
	"username": "ada",
	"first_name": "Ada",
	"last_name": "Lovelace"
}`

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	env := newTestEnv()

	rec := postJSON(env, "/api/auth/register", registerBody, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("register response must not expose password material: %s", rec.Body.String())
	}

	rec = postJSON(env, "/api/auth/login", `{"email":"ada@example.com","password":"pass-123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("expected token in login response")
	}

	// El token recién emitido autentica de inmediato.
	me := doRequest(env, http.MethodGet, "/api/user/me", "Bearer "+body.Token)
	if me.Code != http.StatusOK {
		t.Fatalf("me with fresh token: expected 200, got %d", me.Code)
	}
}

func TestAuthHandler_RegisterDuplicateConflicts(t *testing.T) {
	env := newTestEnv()

	if rec := postJSON(env, "/api/auth/register", registerBody, ""); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}
	rec := postJSON(env, "/api/auth/register", registerBody, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "conflict" {
		t.Fatalf("expected kind conflict, got %q", kind)
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := newTestEnv()

	cases := []string{
		`{"email":"not-an-email","password":"pass-123","username":"u","first_name":"a","last_name":"b"}`,
		`{"email":"a@b.com","password":"short","username":"u","first_name":"a","last_name":"b"}`,
		`{"email":"a@b.com","password":"way-too-long-password","username":"u","first_name":"a","last_name":"b"}`,
		`{"email":"a@b.com","password":"pass-123","first_name":"a","last_name":"b"}`,
	}
	for _, body := range cases {
		rec := postJSON(env, "/api/auth/register", body, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_LoginWrongPasswordMatchesUnknownEmail(t *testing.T) {
	env := newTestEnv()

	if rec := postJSON(env, "/api/auth/register", registerBody, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}

	wrongPass := postJSON(env, "/api/auth/login", `{"email":"ada@example.com","password":"bad-pass"}`, "")
	unknown := postJSON(env, "/api/auth/login", `{"email":"ghost@example.com","password":"bad-pass"}`, "")

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, unknown.Code)
	}
	// Las dos fallas deben ser indistinguibles para el cliente.
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("login failures must be identical: %s vs %s", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	env := newTestEnv()

	rec := postJSON(env, "/api/auth/login", `{"email":"a@b.com"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "invalid_input" {
		t.Fatalf("expected kind invalid_input, got %q", kind)
	}
}
