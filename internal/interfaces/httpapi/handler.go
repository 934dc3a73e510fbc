package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/volley-club/internal/domain/news"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	"github.com/riskibarqy/volley-club/internal/domain/storeitem"
	"github.com/riskibarqy/volley-club/internal/platform/health"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
	"github.com/riskibarqy/volley-club/internal/usecase"
)

// ReadinessChecker reports the database connectivity tracked at runtime.
type ReadinessChecker interface {
	Snapshot() health.DBSnapshot
}

type Handler struct {
	authService    *usecase.AuthService
	playerService  *usecase.PlayerService
	fixtureService *usecase.FixtureService
	newsService    *usecase.NewsService
	storeService   *usecase.StoreService
	leagueService  *usecase.LeagueService
	adminService   *usecase.AdminService
	readiness      ReadinessChecker
	logger         *logging.Logger
	validator      *validator.Validate
	uploadMaxBytes int64
}

func NewHandler(
	authService *usecase.AuthService,
	playerService *usecase.PlayerService,
	fixtureService *usecase.FixtureService,
	newsService *usecase.NewsService,
	storeService *usecase.StoreService,
	leagueService *usecase.LeagueService,
	adminService *usecase.AdminService,
	readiness ReadinessChecker,
	logger *logging.Logger,
	uploadMaxBytes int64,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = defaultUploadMaxBytes
	}

	return &Handler{
		authService:    authService,
		playerService:  playerService,
		fixtureService: fixtureService,
		newsService:    newsService,
		storeService:   storeService,
		leagueService:  leagueService,
		adminService:   adminService,
		readiness:      readiness,
		logger:         logger,
		validator:      newValidator(),
		uploadMaxBytes: uploadMaxBytes,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("player_position", func(fl validator.FieldLevel) bool {
		_, ok := player.AllPositions[player.Position(fl.Field().String())]
		return ok
	})
	_ = v.RegisterValidation("news_category", func(fl validator.FieldLevel) bool {
		_, ok := news.AllCategories[news.Category(fl.Field().String())]
		return ok
	})
	_ = v.RegisterValidation("store_category", func(fl validator.FieldLevel) bool {
		_, ok := storeitem.AllCategories[storeitem.Category(fl.Field().String())]
		return ok
	})
	_ = v.RegisterValidation("store_size", func(fl validator.FieldLevel) bool {
		return storeitem.IsValidSize(storeitem.Size(strings.ToUpper(fl.Field().String())))
	})

	return v
}

// validateRequest reports every failing field under its JSON path.
func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	out := &usecase.ValidationError{Fields: make([]usecase.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		reason := usecase.FieldReasonInvalid
		switch fe.Tag() {
		case "required", "required_with":
			reason = usecase.FieldReasonMissing
		}
		out.Fields = append(out.Fields, usecase.FieldError{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason,
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func invalidField(name string) error {
	return &usecase.ValidationError{Fields: []usecase.FieldError{{Field: name, Reason: usecase.FieldReasonInvalid}}}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness == nil {
		writeSuccess(ctx, w, http.StatusOK, readinessDTO{Status: "ok", Database: "not configured"})
		return
	}

	snapshot := h.readiness.Snapshot()
	dto := readinessDTO{
		Status:    "ok",
		Database:  "connected",
		Attempts:  snapshot.Attempts,
		LastError: snapshot.LastError,
	}
	if !snapshot.LastChecked.IsZero() {
		dto.LastChecked = snapshot.LastChecked.Format(time.RFC3339)
	}
	if !snapshot.Connected {
		dto.Status = "unavailable"
		dto.Database = "disconnected"
		writeJSON(ctx, w, http.StatusServiceUnavailable, googleResponseEnvelope{
			APIVersion: googleAPIVersion,
			Data:       dto,
		})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) requirePrincipal(ctx context.Context, w http.ResponseWriter) (string, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok || strings.TrimSpace(principal.UserID) == "" {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return "", false
	}
	return principal.UserID, true
}
