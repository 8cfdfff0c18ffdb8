package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/internal/usecase"
	"github.com/Gunvolt24/parcel_product/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// PathParcelProduct — эндпоинт проверки "товар + условие оплаты".
const PathParcelProduct = "/parcel-product"

// maxBodyBytes — предел размера тела запроса.
const maxBodyBytes = 1 << 20

type Handler struct {
	validator      ports.ParcelValidator
	log            ports.Logger
	handlerTimeout time.Duration
}

func NewHandler(validator ports.ParcelValidator, log ports.Logger, handlerTimeout time.Duration) *Handler {
	return &Handler{validator: validator, log: log, handlerTimeout: handlerTimeout}
}

// NewRouter — gin-роутер сервиса. otelServiceName != "" включает трассировку запросов.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST(PathParcelProduct, h.validateParcel)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

type errorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (h *Handler) validateParcel(c *gin.Context) {
	ctx := c.Request.Context()
	if h.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.handlerTimeout)
		defer cancel()
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	req, err := usecase.DecodeRequest(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Set(httpx.ContextKeyOutcome, domain.Rejected.String())
			c.JSON(http.StatusRequestEntityTooLarge, errorBody{Error: "body_too_large", Message: "request body too large"})
			return
		}
		h.log.Warnf(ctx, "decode parcel request failed err=%v", err)
		c.Set(httpx.ContextKeyOutcome, domain.Rejected.String())
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid_json", Message: "invalid json"})
		return
	}

	outcome := h.validator.Validate(ctx, req)
	c.Set(httpx.ContextKeyOutcome, outcome.Kind.String())
	writeOutcome(c, outcome)
}

func writeOutcome(c *gin.Context, o domain.Outcome) {
	switch o.Kind {
	case domain.Accepted:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case domain.Rejected:
		kind, field := o.Reason()
		c.JSON(http.StatusBadRequest, errorBody{Error: string(kind), Field: field, Message: o.Message()})
	default:
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal", Message: o.Message()})
	}
}
