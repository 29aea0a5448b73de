package api

import (
	"cmp"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/rumor-comb/app/rumors"
)

type Handler struct {
	looker    Looker
	generator *Generator
	version   string
}

func NewHandler(looker Looker, version, siteURL string) *Handler {
	return &Handler{
		looker:    looker,
		generator: NewGenerator(siteURL, version),
		version:   version,
	}
}

func queryParams(c *gin.Context) Params {
	return Params{
		Subject: cmp.Or(c.Query("q"), c.Query("subject")),
		Mode:    c.Query("mode"),
		Debug:   c.Query("debug"),
	}
}

func (h *Handler) GetRumors(c *gin.Context) {
	status, body := Respond(c.Request.Context(), h.looker, queryParams(c))

	if success, ok := body.(SuccessBody); ok {
		c.Header("X-Rumor-Items", strconv.Itoa(len(success.Items)))
	}

	c.JSON(status, body)
}

// GetRumorsFeed serves the same lookup as RSS. Errors keep the JSON envelope.
func (h *Handler) GetRumorsFeed(c *gin.Context) {
	params := queryParams(c)
	params.Debug = ""

	status, body := Respond(c.Request.Context(), h.looker, params)
	success, ok := body.(SuccessBody)
	if !ok {
		c.JSON(status, body)
		return
	}

	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	selfLink := fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.RequestURI())

	rss := h.generator.Run(rumors.Result{Subject: success.Subject, Items: success.Items}, selfLink)

	c.Header("X-Rumor-Items", strconv.Itoa(len(success.Items)))
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"timestamp":  time.Now().In(time.Local).Format(time.RFC3339),
		"version":    h.version,
		"strategies": h.looker.Strategies(),
	})
}
