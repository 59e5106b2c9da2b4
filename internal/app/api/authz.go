package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
)

const policyQuery = "data.segments.authz.allow"

// NewAuthorizer evaluates the rego policy read from policies for every
// request. The policy sees the method, path and bearer token as input.
func NewAuthorizer(ctx context.Context, log *slog.Logger, policies io.Reader) (func(http.Handler) http.Handler, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, err
	}

	query, err := rego.New(
		rego.Query(policyQuery),
		rego.Module("segments.rego", string(module)),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			input := map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
				"token":  bearerToken(r),
			}

			results, err := query.Eval(r.Context(), rego.EvalInput(input))
			if err != nil {
				log.Error("could not evaluate policy", "err", err.Error())
				writeError(w, http.StatusForbidden, "access denied")
				return
			}

			if !results.Allowed() {
				log.Debug("request denied by policy", "method", r.Method, "path", r.URL.Path)
				writeError(w, http.StatusForbidden, "access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}
