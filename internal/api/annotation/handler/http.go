package annotationHandler

import (
	annotationService "DermaGolang/internal/api/annotation/service"
	"DermaGolang/internal/middleware"
	"DermaGolang/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AnnotationHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	annotationService annotationService.IAnnotationService
	utils             utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as annotationService.IAnnotationService,
	utils utils.IUtils,
) *AnnotationHandler {
	return &AnnotationHandler{
		annotationService: as,
		log:               log,
		validator:         validator,
		middleware:        middleware,
		utils:             utils,
	}
}

func (h *AnnotationHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	annotation := srv.Group("/annotation")
	annotation.Post("/issues", h.AnnotateIssues)
	annotation.Post("/issues/url", h.AnnotateIssuesFromURL)
	annotation.Get("/topology", h.GetTopology)
	annotation.Get("/records", h.GetRecentRecords)
	annotation.Get("/records/:id", h.GetRecord)

	mesh := annotation.Group("/mesh")
	mesh.Use("/ws", wsMiddleware)
	mesh.Get("/ws", websocket.New(h.handleMeshWebSocket))
}
