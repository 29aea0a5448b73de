package api

import (
	"context"

	"github.com/lysyi3m/rumor-comb/app/rumors"
)

// Looker is the lookup side of rumors.Service.
type Looker interface {
	Lookup(ctx context.Context, req rumors.Request) (rumors.Result, error)
	Strategies() []string
}

var _ Looker = (*rumors.Service)(nil)

// Params are the raw invocation parameters, whatever the transport.
type Params struct {
	Subject string
	Mode    string
	Debug   string
}

type SuccessBody struct {
	Subject string        `json:"subject"`
	Items   []rumors.Item `json:"items"`
	Debug   *rumors.Trace `json:"debug,omitempty"`
}

type ErrorBody struct {
	Error string        `json:"error"`
	Debug *rumors.Trace `json:"debug,omitempty"`
}
