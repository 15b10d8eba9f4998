package annotationRepository

import (
	"DermaGolang/internal/api/annotation"
	"DermaGolang/internal/entity"
	contextPkg "DermaGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type AnnotationRecordDB struct {
	ID            sql.NullString `db:"id"`
	RequestID     sql.NullString `db:"request_id"`
	Status        sql.NullString `db:"status"`
	IssueCount    sql.NullInt64  `db:"issue_count"`
	RenderedCount sql.NullInt64  `db:"rendered_count"`
	ImageWidth    sql.NullInt64  `db:"image_width"`
	ImageHeight   sql.NullInt64  `db:"image_height"`
	ImageURL      sql.NullString `db:"image_url"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (r *annotationRepository) CreateRecord(c context.Context, record entity.AnnotationRecord) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":             record.ID,
		"request_id":     record.RequestID,
		"status":         record.Status,
		"issue_count":    record.IssueCount,
		"rendered_count": record.RenderedCount,
		"image_width":    record.ImageWidth,
		"image_height":   record.ImageHeight,
		"image_url":      record.ImageURL,
		"created_at":     time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateRecord, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateRecord")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating annotation record")

		return err
	}

	return nil
}

func (r *annotationRepository) GetRecordByID(c context.Context, id string) (entity.AnnotationRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var record AnnotationRecordDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetRecordByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordByID named query preparation err")

		return entity.AnnotationRecord{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetRecordByID no rows found")
			return entity.AnnotationRecord{}, annotation.ErrRecordNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordByID execution err")
		return entity.AnnotationRecord{}, err
	}

	return r.makeAnnotationRecord(record), nil
}

func (r *annotationRepository) GetRecordsByRequestID(c context.Context, reqID string) ([]entity.AnnotationRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var records []AnnotationRecordDB

	argsKV := map[string]interface{}{
		"request_id": reqID,
	}

	query, args, err := sqlx.Named(queryGetRecordsByRequestID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordsByRequestID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &records, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordsByRequestID execution err")
		return nil, err
	}

	result := make([]entity.AnnotationRecord, 0, len(records))
	for _, record := range records {
		result = append(result, r.makeAnnotationRecord(record))
	}

	return result, nil
}

func (r *annotationRepository) GetRecentRecords(c context.Context, limit int) ([]entity.AnnotationRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var records []AnnotationRecordDB

	argsKV := map[string]interface{}{
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetRecentRecords, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecentRecords named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &records, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecentRecords execution err")
		return nil, err
	}

	result := make([]entity.AnnotationRecord, 0, len(records))
	for _, record := range records {
		result = append(result, r.makeAnnotationRecord(record))
	}

	return result, nil
}

func (r *annotationRepository) makeAnnotationRecord(record AnnotationRecordDB) entity.AnnotationRecord {
	return entity.AnnotationRecord{
		ID:            record.ID.String,
		RequestID:     record.RequestID.String,
		Status:        record.Status.String,
		IssueCount:    int(record.IssueCount.Int64),
		RenderedCount: int(record.RenderedCount.Int64),
		ImageWidth:    int(record.ImageWidth.Int64),
		ImageHeight:   int(record.ImageHeight.Int64),
		ImageURL:      record.ImageURL.String,
		CreatedAt:     record.CreatedAt,
	}
}
