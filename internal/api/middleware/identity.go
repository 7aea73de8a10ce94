package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/digitallife/lessonhub/internal/domain/entities"
)

type viewerContextKey struct{}

// Identity headers set by the upstream session layer. The API trusts them
// as-is; authentication itself happens before requests reach this service.
const (
	HeaderUserEmail   = "X-User-Email"
	HeaderUserPremium = "X-User-Premium"
)

// IdentityMiddleware resolves the caller identity from request headers and
// attaches it to the request context. Requests without identity headers
// proceed as an anonymous, non-premium viewer.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := entities.Viewer{
			Email:     strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
			IsPremium: strings.EqualFold(r.Header.Get(HeaderUserPremium), "true"),
		}

		ctx := context.WithValue(r.Context(), viewerContextKey{}, viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ViewerFromContext returns the viewer attached by IdentityMiddleware. The
// zero viewer comes back when the middleware did not run.
func ViewerFromContext(ctx context.Context) entities.Viewer {
	if viewer, ok := ctx.Value(viewerContextKey{}).(entities.Viewer); ok {
		return viewer
	}
	return entities.Viewer{}
}
