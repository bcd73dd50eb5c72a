package http

import (
	"fmt"
	"net/http"
	"strings"

	workspace "github.com/EOEPCA/rm-workspace-api"
	wscontext "github.com/EOEPCA/rm-workspace-api/context"
	"github.com/golang-jwt/jwt/v4"
)

// PrincipalAuth extracts the calling principal from a bearer token and
// sets it on the request context. The engine itself never sees tokens;
// authentication stays at this edge. An empty secret disables the
// middleware entirely, for deployments where an ingress gateway already
// authenticated the call.
func PrincipalAuth(api *API, secret []byte) Middleware {
	return func(next http.Handler) http.Handler {
		if len(secret) == 0 {
			return next
		}

		fn := func(w http.ResponseWriter, r *http.Request) {
			principal, err := principalFromRequest(r, secret)
			if err != nil {
				api.Err(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(wscontext.SetPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(fn)
	}
}

func principalFromRequest(r *http.Request, secret []byte) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", &workspace.Error{
			Code: workspace.EUnauthorized,
			Msg:  "missing bearer token",
		}
	}

	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return "", &workspace.Error{
			Code: workspace.EUnauthorized,
			Msg:  "invalid bearer token",
			Err:  err,
		}
	}

	if claims.Subject == "" {
		return "", &workspace.Error{
			Code: workspace.EUnauthorized,
			Msg:  "token carries no subject",
		}
	}
	return claims.Subject, nil
}
