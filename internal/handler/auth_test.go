package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{
			name: "missing fields",
			body: `{"email":"a@x.com","password":"secret1"}`,
			msg:  "name, email, password and role are required",
		},
		{
			name: "unknown role",
			body: `{"name":"A","email":"a@x.com","password":"secret1","role":"admin"}`,
			msg:  "role must be either 'client' or 'provider'",
		},
		{
			name: "email without at sign",
			body: `{"name":"A","email":"ax.com","password":"secret1","role":"client"}`,
			msg:  "invalid email format",
		},
		{
			name: "short password",
			body: `{"name":"A","email":"a@x.com","password":"abc","role":"client"}`,
			msg:  "password must be at least 6 characters",
		},
		{
			name: "provider without phone",
			body: `{"name":"A","email":"a@x.com","password":"secret1","role":"provider"}`,
			msg:  "service providers must have a valid phone number",
		},
		{
			name: "provider with short phone",
			body: `{"name":"A","email":"a@x.com","password":"secret1","role":"provider","phone":"12345"}`,
			msg:  "service providers must have a valid phone number",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestApp(newFakeStore())
			rec := doJSON(e, http.MethodPost, "/auth/register", tc.body, "")
			assertStatus(t, rec, http.StatusBadRequest)
			assert.Equal(t, tc.msg, decodeBody(t, rec)["error"])
		})
	}
}

func TestRegisterConflictIsCaseInsensitive(t *testing.T) {
	e := newTestApp(newFakeStore())

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"A@x.com","password":"secret1","role":"client"}`, "")
	assertStatus(t, rec, http.StatusCreated)

	rec = doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"Ann Again","email":"a@x.com","password":"secret1","role":"client"}`, "")
	assertStatus(t, rec, http.StatusConflict)
	assert.Equal(t, "email already registered", decodeBody(t, rec)["error"])
}

func TestRegisterProviderReturnsPublicView(t *testing.T) {
	e := newTestApp(newFakeStore())

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"John Mechanic","email":"john@x.com","password":"secret1","role":"provider",
		  "service_type":"mechanic","location":"Kinoo","phone":"+254712345678"}`, "")
	assertStatus(t, rec, http.StatusCreated)

	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "response must contain a user object")

	assert.Equal(t, "provider", user["role"])
	assert.Equal(t, "mechanic", user["service_type"])
	assert.Equal(t, "Kinoo", user["location"])
	assert.Equal(t, float64(0), user["rating"], "fresh provider starts at aggregate 0")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	store := newFakeStore()
	seedClient(t, store, "Ann", "ann@x.com")
	e := newTestApp(store)

	// Unknown email and wrong password must be indistinguishable.
	recUnknown := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"nobody@x.com","password":"password123"}`, "")
	recWrong := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"not-the-password"}`, "")

	assertStatus(t, recUnknown, http.StatusUnauthorized)
	assertStatus(t, recWrong, http.StatusUnauthorized)
	assert.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
}

func TestRegisterLoginMeRoundTrip(t *testing.T) {
	e := newTestApp(newFakeStore())

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"secret1","role":"client"}`, "")
	assertStatus(t, rec, http.StatusCreated)
	registeredID := decodeBody(t, rec)["user"].(map[string]any)["id"].(float64)

	rec = doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"secret1"}`, "")
	assertStatus(t, rec, http.StatusOK)
	login := decodeBody(t, rec)
	token := login["access"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)

	// The token must resolve back to the account created at registration.
	rec = doJSON(e, http.MethodGet, "/auth/me", "", token)
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, registeredID, decodeBody(t, rec)["id"])

	// Without a token the same endpoint refuses service.
	rec = doJSON(e, http.MethodGet, "/auth/me", "", "")
	assertStatus(t, rec, http.StatusUnauthorized)
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newFakeStore()
	seedClient(t, store, "Ann", "ann@x.com")
	e := newTestApp(store)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"password123"}`, "")
	assertStatus(t, rec, http.StatusOK)
	refresh := decodeBody(t, rec)["refresh"].(map[string]any)["token"].(string)

	rec = doJSON(e, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"`+refresh+`"}`, "")
	assertStatus(t, rec, http.StatusOK)

	// The old refresh token was revoked by the rotation.
	rec = doJSON(e, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"`+refresh+`"}`, "")
	assertStatus(t, rec, http.StatusUnauthorized)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	store := newFakeStore()
	seedClient(t, store, "Ann", "ann@x.com")
	e := newTestApp(store)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"ann@x.com","password":"password123"}`, "")
	assertStatus(t, rec, http.StatusOK)
	refresh := decodeBody(t, rec)["refresh"].(map[string]any)["token"].(string)

	rec = doJSON(e, http.MethodPost, "/auth/logout",
		`{"refresh_token":"`+refresh+`"}`, "")
	assertStatus(t, rec, http.StatusNoContent)

	rec = doJSON(e, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"`+refresh+`"}`, "")
	assertStatus(t, rec, http.StatusUnauthorized)
}
