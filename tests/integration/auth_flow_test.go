package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow_SignupSigninProfileRefresh(t *testing.T) {
	app := setupApp(t)

	// Step 1: Signup
	accessToken, refreshToken, userID := app.signupUser(t, "auth@test.com", "password123")
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected non-empty tokens from signup")
	}
	if userID == 0 {
		t.Fatal("expected non-zero user ID")
	}

	// Step 2: Signin with same credentials
	signinAccess, signinRefresh := app.signinUser(t, "auth@test.com", "password123")
	if signinAccess == "" || signinRefresh == "" {
		t.Fatal("expected non-empty tokens from signin")
	}

	// Step 3: Fetch current user with the signin access token
	rec := app.request("GET", "/api/v1/users/current", "", signinAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["email"] != "auth@test.com" {
		t.Errorf("expected email auth@test.com, got %v", user["email"])
	}
	if user["role"] != "investor" {
		t.Errorf("expected investor role, got %v", user["role"])
	}

	// Step 4: Refresh the token pair
	body := fmt.Sprintf(`{"refresh_token":%q}`, signinRefresh)
	rec = app.request("POST", "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	newAccess := parseJSON(t, rec)["access_token"].(string)
	if newAccess == "" {
		t.Fatal("expected non-empty new access token after refresh")
	}

	// Step 5: New access token works
	rec = app.request("GET", "/api/v1/users/current", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with new token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_SignupDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	app.signupUser(t, "dup@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/signup",
		`{"email":"dup@test.com","password":"password123","confirm_password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
	assertErrorCode(t, rec, "DUPLICATE_EMAIL")
}

func TestAuthFlow_SignupPasswordMismatch(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/auth/signup",
		`{"email":"mismatch@test.com","password":"password123","confirm_password":"password456"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for password mismatch, got %d: %s", rec.Code, rec.Body.String())
	}
	assertErrorCode(t, rec, "PASSWORD_MISMATCH")
}

func TestAuthFlow_SigninWrongPassword(t *testing.T) {
	app := setupApp(t)

	app.signupUser(t, "wrong@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/signin",
		`{"email":"wrong@test.com","password":"not-the-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	assertErrorCode(t, rec, "INVALID_CREDENTIALS")
}

func TestAuthFlow_RefreshTokenNotAcceptedAsAccess(t *testing.T) {
	app := setupApp(t)

	_, refreshToken, _ := app.signupUser(t, "tokens@test.com", "password123")

	rec := app.request("GET", "/api/v1/users/current", "", refreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when using refresh token as access token, got %d", rec.Code)
	}
}

func TestAuthFlow_ProtectedRouteWithoutToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/portfolios", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
