package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

func parseIntDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	status, msg := mapDomainError(err)
	logHTTPOperationError(ctx, operation, status, msg, err)
	writeError(w, status, msg)
}

func writeValidationError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	msg := err.Error()
	logHTTPOperationError(ctx, operation, http.StatusBadRequest, msg, err)
	writeError(w, http.StatusBadRequest, msg)
}
