// Command lambda serves rumor lookups behind API Gateway with the same envelope as
// the HTTP server.
package main

import (
	"cmp"
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/lysyi3m/rumor-comb/app/api"
	"github.com/lysyi3m/rumor-comb/app/cfg"
	"github.com/lysyi3m/rumor-comb/app/rumors"
)

type Handler struct {
	looker api.Looker
}

func NewHandler(looker api.Looker) *Handler {
	return &Handler{looker: looker}
}

func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	query := req.QueryStringParameters

	status, body := api.Respond(ctx, h.looker, api.Params{
		Subject: cmp.Or(query["q"], query["subject"]),
		Mode:    query["mode"],
		Debug:   query["debug"],
	})

	data, err := json.Marshal(body)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json; charset=utf-8",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(data),
	}, nil
}

// loadEnvFile applies a bundled .env file. A missing file is not an error;
// Lambda normally sets the environment directly.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func main() {
	if err := loadEnvFile(".env"); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	// Lambda has no command line, so only the environment and defaults apply.
	appCfg, err := cfg.LoadArgs([]string{})
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		return
	}
	slog.SetLogLoggerLevel(appCfg.LogLevel())

	service, err := rumors.NewServiceFromCfg(appCfg)
	if err != nil {
		log.Fatalf("Failed to initialize rumor service: %v", err)
	}

	lambda.Start(NewHandler(service).Handle)
}
