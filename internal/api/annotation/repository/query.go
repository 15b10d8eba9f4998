package annotationRepository

const (
	queryCreateRecord = `
		INSERT INTO annotation_records (
			id,
			request_id,
			status,
			issue_count,
			rendered_count,
			image_width,
			image_height,
			image_url,
			created_at
		) VALUES (
			:id,
			:request_id,
			:status,
			:issue_count,
			:rendered_count,
			:image_width,
			:image_height,
			:image_url,
			:created_at
		)
	`

	queryGetRecordByID = `
		SELECT
			id,
			request_id,
			status,
			issue_count,
			rendered_count,
			image_width,
			image_height,
			image_url,
			created_at
		FROM annotation_records
		WHERE id = :id
	`

	queryGetRecordsByRequestID = `
		SELECT
			id,
			request_id,
			status,
			issue_count,
			rendered_count,
			image_width,
			image_height,
			image_url,
			created_at
		FROM annotation_records
		WHERE request_id = :request_id
		ORDER BY created_at DESC
	`

	queryGetRecentRecords = `
		SELECT
			id,
			request_id,
			status,
			issue_count,
			rendered_count,
			image_width,
			image_height,
			image_url,
			created_at
		FROM annotation_records
		ORDER BY created_at DESC
		LIMIT :limit
	`
)
