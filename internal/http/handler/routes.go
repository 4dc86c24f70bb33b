package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uploadtest/internal/service"
)

const documentField = "document"

// RegisterRoutes attaches the stub server routes to app. An empty authToken accepts
// any non-empty bearer token.
func RegisterRoutes(app *fiber.App, svc service.ApplicationService, authToken string, metrics prometheus.Gatherer) {
	app.Get("/health", HealthCheck(svc))
	app.Get("/healthz", LivenessProbe())
	if metrics != nil {
		app.Get("/metrics", Metrics(metrics))
	}

	api := app.Group("/api")
	api.Post("/test-upload", UploadApplication(svc, authToken))
	api.Get("/applications/:id", GetApplication(svc))
}

// HealthCheck reports whether the repository and storage backends answer.
func HealthCheck(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := svc.Ready(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// UploadApplication accepts one multipart loan application with an optional
// "document" image part.
func UploadApplication(svc service.ApplicationService, authToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authorized(c.Get(fiber.HeaderAuthorization), authToken) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid bearer token")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form required")
		}

		in := service.SubmitInput{Fields: make(map[string]string, len(form.Value))}
		for name, values := range form.Value {
			if len(values) > 0 {
				in.Fields[name] = values[0]
			}
		}

		if files := form.File[documentField]; len(files) > 0 {
			fh := files[0]
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get(fiber.HeaderContentType)
			if ct == "" {
				ct = "application/octet-stream"
			}
			in.Document = &service.DocumentInput{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
			}
		}

		res, err := svc.Submit(c.UserContext(), in)
		if err != nil {
			return submitError(c, err)
		}
		return c.JSON(res)
	}
}

func GetApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "application not found")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(app)
	}
}

func submitError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return writeFieldsError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "missing required fields", vErr.Missing)
	case errors.Is(err, service.ErrInvalidDocument):
		return writeError(c, fiber.StatusBadRequest, "INVALID_DOCUMENT", "document must be an image")
	case errors.Is(err, service.ErrDocumentTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "DOCUMENT_TOO_LARGE", "document exceeds 5MB")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func authorized(header, want string) bool {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return false
	}
	if want == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(want)) == 1
}
