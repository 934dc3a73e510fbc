package httpapi

import (
	"net/http"

	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

// RouterOptions carries the HTTP-facing configuration of the router.
type RouterOptions struct {
	CORSAllowedOrigins []string
	UploadsDir         string
	ExposeErrorDetail  bool
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	authorizer RoleAuthorizer,
	logger *logging.Logger,
	opts RouterOptions,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerAuthRoutes(mux, handler, verifier)
	registerPublicRoutes(mux, handler)
	registerAdminRoutes(mux, handler, verifier, authorizer)
	registerUploadRoutes(mux, opts.UploadsDir)

	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, ErrorDetail(opts.ExposeErrorDetail, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
