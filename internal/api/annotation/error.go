package annotation

import (
	"DermaGolang/pkg/response"
	"net/http"
)

var (
	ErrEmptyIssueList   = response.NewError(http.StatusBadRequest, "no skin issues provided")
	ErrInvalidImage     = response.NewError(http.StatusBadRequest, "image could not be decoded")
	ErrInvalidSeverity  = response.NewError(http.StatusBadRequest, "invalid severity value")
	ErrInvalidFileType  = response.NewError(http.StatusBadRequest, "invalid file type")
	ErrFileTooLarge     = response.NewError(http.StatusBadRequest, "file too large")
	ErrImageFetchFailed = response.NewError(http.StatusBadGateway, "failed to fetch image from url")
	ErrMeshUnavailable  = response.NewError(http.StatusServiceUnavailable, "mesh detection service unavailable")
	ErrRecordNotFound   = response.NewError(http.StatusNotFound, "annotation record not found")
	ErrRenderFailed     = response.NewError(http.StatusInternalServerError, "failed to render annotated image")
)
