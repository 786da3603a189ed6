package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// jobHandler serves API Gateway proxy events of the form POST /jobs/{job}.
type jobHandler struct {
	jobs job.Service
	auth *jwtauth.JWTAuth
	now  func() time.Time
}

func (h *jobHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod != "" && req.HTTPMethod != http.MethodPost {
		return errorResponse(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is supported"), nil
	}

	if err := h.authorize(ctx, req.Headers); err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, auth.ErrServiceRoleRequired) {
			status = http.StatusForbidden
		}
		return errorResponse(status, "UNAUTHORIZED", err.Error()), nil
	}

	name := req.PathParameters["job"]
	if name == "" {
		name = path.Base(strings.TrimSuffix(req.Path, "/"))
	}

	summary, err := h.jobs.Trigger(ctx, name, h.now())
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return errorResponse(http.StatusNotFound, "NOT_FOUND", err.Error()), nil
		}
		slog.Error("Job trigger failed", "job", name, "error", err)
		return errorResponse(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"), nil
	}

	status := summary.StatusCode()
	return jsonResponse(status, response.Response{
		Success: status < http.StatusInternalServerError,
		Data:    summary,
	}), nil
}

func (h *jobHandler) authorize(ctx context.Context, headers map[string]string) error {
	header := ""
	for k, v := range headers {
		if strings.EqualFold(k, "Authorization") {
			header = v
			break
		}
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return auth.ErrInvalidToken
	}

	token, err := jwtauth.VerifyToken(h.auth, strings.TrimSpace(tokenString))
	if err != nil {
		return auth.ErrInvalidToken
	}
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.ErrInvalidToken
	}
	if !auth.IsAccessToken(claims) {
		return auth.ErrInvalidToken
	}
	actor, err := auth.ActorFromClaims(claims)
	if err != nil {
		return err
	}
	if !actor.IsService() {
		return auth.ErrServiceRoleRequired
	}
	return nil
}

func errorResponse(status int, code, message string) events.APIGatewayProxyResponse {
	return jsonResponse(status, response.Response{
		Success: false,
		Error:   &response.ErrorDetail{Code: code, Message: message},
	})
}

func jsonResponse(status int, payload interface{}) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"success":false,"error":{"code":"ENCODING_ERROR","message":"Failed to encode response"}}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
