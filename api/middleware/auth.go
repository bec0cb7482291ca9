package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/easybody/easybody-backend/api/responses"
	"github.com/easybody/easybody-backend/internal/users"
	pkgAuth "github.com/easybody/easybody-backend/pkg/auth"
	"github.com/easybody/easybody-backend/pkg/config"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/logger"
)

// IdentityResolver maps a token subject to a platform account.
type IdentityResolver interface {
	ResolveSubject(ctx context.Context, subject string) (*users.UserDTO, error)
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

// resolveIdentity validates the bearer token and looks up the account
// it names. The token never carries an internal id; the subject claim
// is the single source of identity.
func resolveIdentity(r *http.Request, cfg config.JWTConfig, identity IdentityResolver, token string) (*users.UserDTO, error) {
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.Subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token has no subject")
	}
	if identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "identity resolution unavailable")
	}

	user, err := identity.ResolveSubject(r.Context(), claims.Subject)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown subject")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}
	return user, nil
}

// Auth validates a bearer token, resolves its subject to an account and
// seeds the request context with the account's id and role.
func Auth(cfg config.JWTConfig, identity IdentityResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			user, err := resolveIdentity(r, cfg, identity, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, user.ID.String())
			ctx = context.WithValue(ctx, ctxRole, string(user.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    user.ID.String(),
					"actor_role": string(user.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds the resolved account when a valid token is present
// but lets anonymous requests through.
func OptionalAuth(cfg config.JWTConfig, identity IdentityResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(r.Header.Get("Authorization")) == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolveIdentity(r, cfg, identity, bearerToken(r))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, user.ID.String())
			ctx = context.WithValue(ctx, ctxRole, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
