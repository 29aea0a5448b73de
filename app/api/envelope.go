package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lysyi3m/rumor-comb/app/rumors"
)

const MissingSubjectMessage = "Missing q"

// ParseDebug accepts 1, true and yes in any case.
func ParseDebug(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// Respond runs one lookup and returns the status and body of the envelope. Every
// outcome, including a panic below, ends in a well-formed body.
func Respond(ctx context.Context, looker Looker, params Params) (status int, body any) {
	debug := ParseDebug(params.Debug)

	if strings.TrimSpace(params.Subject) == "" {
		return http.StatusBadRequest, ErrorBody{Error: MissingSubjectMessage}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Lookup panicked", "subject", params.Subject, "panic", r)
			status, body = http.StatusInternalServerError, ErrorBody{Error: fmt.Sprint(r)}
		}
	}()

	result, err := looker.Lookup(ctx, rumors.Request{
		Subject: params.Subject,
		Mode:    params.Mode,
		Debug:   debug,
	})
	if errors.Is(err, rumors.ErrMissingSubject) {
		return http.StatusBadRequest, ErrorBody{Error: MissingSubjectMessage}
	}
	if err != nil {
		slog.Error("Lookup failed", "subject", params.Subject, "error", err)
		errBody := ErrorBody{Error: err.Error()}
		if debug {
			errBody.Debug = result.Trace
		}
		return http.StatusInternalServerError, errBody
	}

	items := result.Items
	if items == nil {
		items = []rumors.Item{}
	}

	success := SuccessBody{
		Subject: result.Subject,
		Items:   items,
	}
	if debug {
		success.Debug = result.Trace
	}
	return http.StatusOK, success
}
