package communicationRepository

const (
	queryGetAllPhrases = `
		SELECT
			id, direction, message
		FROM phrases
		WHERE is_active = TRUE
		ORDER BY ordinal ASC
	`
)
