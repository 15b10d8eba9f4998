package annotationHandler

import (
	"DermaGolang/internal/api/annotation"
	"DermaGolang/internal/entity"
	contextPkg "DermaGolang/pkg/context"
	"DermaGolang/pkg/handlerUtil"
	"DermaGolang/pkg/log"
	"DermaGolang/pkg/utils"
	"errors"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

const annotateTimeout = 30 * time.Second

// AnnotateIssues accepts either a multipart upload (field "image", optional
// JSON fields "issues" and "landmarks") or a plain JSON body.
func (h *AnnotationHandler) AnnotateIssues(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), annotateTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing annotation request")

	var imageBytes []byte
	var landmarks []entity.Point
	var issues []annotation.IssueInput

	file, err := ctx.FormFile("image")
	if err == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		if err := h.utils.ValidateImageFile(file); err != nil {
			mapped := annotation.ErrInvalidFileType
			if errors.Is(err, utils.ErrFileSizeExceeded) {
				mapped = annotation.ErrFileTooLarge
			}
			return errHandler.Handle(ctx, requestID, mapped, ctx.Path(), "validate_image_file")
		}

		fileContent, err := file.Open()
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
		}
		defer fileContent.Close()

		imageBytes, err = io.ReadAll(fileContent)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
		}

		if issuesJSON := ctx.FormValue("issues"); issuesJSON != "" {
			if err := jsoniter.UnmarshalFromString(issuesJSON, &issues); err != nil {
				return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
			}
		}
		if landmarksJSON := ctx.FormValue("landmarks"); landmarksJSON != "" {
			if err := jsoniter.UnmarshalFromString(landmarksJSON, &landmarks); err != nil {
				return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
			}
		}

		for _, in := range issues {
			if err := h.validator.Struct(in); err != nil {
				return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
			}
		}
	} else {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Debug("Processing JSON request")

		var req annotation.AnnotateRequest
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		imageBytes, err = h.utils.DecodeBase64Image(req.ImageBase64)
		if err != nil {
			return errHandler.Handle(ctx, requestID, annotation.ErrInvalidImage, ctx.Path(), "decode_base64_image")
		}

		landmarks = req.Landmarks
		issues = req.Issues
	}

	result, err := h.annotationService.AnnotateImage(c, imageBytes, landmarks, issues)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "annotate_image")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":      requestID,
			"path":            ctx.Path(),
			"status":          result.Status,
			"total_issues":    result.TotalIssues,
			"rendered_issues": result.RenderedIssues,
		}).Info("Annotation successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnnotationHandler) AnnotateIssuesFromURL(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), annotateTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing annotation-from-URL request")

	var req annotation.AnnotateURLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.annotationService.AnnotateImageFromURL(c, req.ImageURL, req.Landmarks, req.Issues)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "annotate_image_from_url")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":      requestID,
			"path":            ctx.Path(),
			"status":          result.Status,
			"total_issues":    result.TotalIssues,
			"rendered_issues": result.RenderedIssues,
		}).Info("Annotation from URL successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AnnotationHandler) GetTopology(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.annotationService.Topology())
}

func (h *AnnotationHandler) GetRecentRecords(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if originRequestID := ctx.Query("request_id"); originRequestID != "" {
		records, err := h.annotationService.GetRecordsByRequestID(c, originRequestID)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_records_by_request_id")
		}
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"data": records})
	}

	limit := ctx.QueryInt("limit", 20)

	records, err := h.annotationService.GetRecentRecords(c, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_recent_records")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"data": records})
}

func (h *AnnotationHandler) GetRecord(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	detail, err := h.annotationService.GetRecord(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_record")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, detail)
}

func (h *AnnotationHandler) handleMeshWebSocket(c *websocket.Conn) {
	h.log.Info("Mesh detection WebSocket client connected")
	defer h.log.Info("Mesh detection WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Mesh WebSocket error: %v", err)
			} else {
				h.log.Info("Mesh WebSocket connection closed")
			}
			break
		}

		if messageType == websocket.BinaryMessage {
			result, err := h.annotationService.ProcessMeshFrame(message)
			if err != nil {
				h.log.Errorf("Error processing mesh frame: %v", err)
				if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
					h.log.Errorf("Error sending error response: %v", writeErr)
					break
				}
				continue
			}

			if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				h.log.Errorf("Error setting write deadline: %v", err)
				break
			}

			if err := c.WriteJSON(result); err != nil {
				h.log.Errorf("Error writing JSON response: %v", err)
				break
			}

			if err := c.SetWriteDeadline(time.Time{}); err != nil {
				h.log.Errorf("Error resetting write deadline: %v", err)
				break
			}
		} else {
			h.log.Warnf("Received unexpected message type: %d", messageType)
		}
	}
}
