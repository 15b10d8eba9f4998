package annotationService

import (
	"DermaGolang/internal/api/annotation"
	annotationRepository "DermaGolang/internal/api/annotation/repository"
	"DermaGolang/internal/entity"
	"DermaGolang/pkg/annotator"
	"DermaGolang/pkg/meshclient"
	"DermaGolang/pkg/redis"
	"DermaGolang/pkg/s3"
	"DermaGolang/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAnnotationService interface {
	AnnotateImage(ctx context.Context, imageBytes []byte, landmarks []entity.Point, issues []annotation.IssueInput) (*annotation.AnnotateResponse, error)
	AnnotateImageFromURL(ctx context.Context, imageURL string, landmarks []entity.Point, issues []annotation.IssueInput) (*annotation.AnnotateResponse, error)
	Topology() annotation.TopologyResponse
	ProcessMeshFrame(frame []byte) (*entity.MeshResult, error)
	GetRecentRecords(ctx context.Context, limit int) ([]entity.AnnotationRecord, error)
	GetRecord(ctx context.Context, id string) (*annotation.RecordDetail, error)
	GetRecordsByRequestID(ctx context.Context, requestID string) ([]entity.AnnotationRecord, error)
}

type annotationService struct {
	log                  *logrus.Logger
	annotationRepository annotationRepository.Repository
	meshClient           meshclient.IMeshClient
	redis                redis.IRedis
	s3                   s3.ItfS3
	utils                utils.IUtils
	palette              annotator.Palette
	options              annotator.Options
}

func NewAnnotationService(
	log *logrus.Logger,
	ar annotationRepository.Repository,
	mc meshclient.IMeshClient,
	redis redis.IRedis,
	s3 s3.ItfS3,
	utils utils.IUtils,
) IAnnotationService {
	return &annotationService{
		log:                  log,
		annotationRepository: ar,
		meshClient:           mc,
		redis:                redis,
		s3:                   s3,
		utils:                utils,
		palette:              annotator.DefaultPalette(),
		options:              annotator.DefaultOptions(),
	}
}
