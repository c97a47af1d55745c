package communicationRepository

import (
	"context"
	"database/sql"
	"strings"

	"GestureTalk/internal/entity"
	contextPkg "GestureTalk/pkg/context"
	"GestureTalk/pkg/gesture"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type PhraseDB struct {
	ID        sql.NullString `db:"id"`
	Direction sql.NullString `db:"direction"`
	Message   sql.NullString `db:"message"`
}

func (r *phraseRepository) GetAllPhrases(ctx context.Context) ([]entity.Phrase, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var phrasesList []PhraseDB

	query, args, err := sqlx.Named(queryGetAllPhrases, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllPhrases named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &phrasesList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllPhrases execution err")
		return nil, err
	}

	var phrases []entity.Phrase
	for _, phraseDB := range phrasesList {
		phrase, ok := r.makePhrase(phraseDB)
		if !ok {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"phrase_id":  phraseDB.ID.String,
			}).Warn("Skipping catalog row with missing or invalid fields")
			continue
		}
		phrases = append(phrases, phrase)
	}

	return phrases, nil
}

// makePhrase validates a raw catalog row. Rows are never trusted as-is:
// direction is normalized to lowercase and rows without a usable id,
// direction or message are dropped.
func (r *phraseRepository) makePhrase(row PhraseDB) (entity.Phrase, bool) {
	if !row.ID.Valid || strings.TrimSpace(row.ID.String) == "" {
		return entity.Phrase{}, false
	}
	if !row.Message.Valid || strings.TrimSpace(row.Message.String) == "" {
		return entity.Phrase{}, false
	}

	direction, ok := gesture.ParseDirection(row.Direction.String)
	if !ok {
		return entity.Phrase{}, false
	}

	return entity.Phrase{
		ID:        row.ID.String,
		Direction: direction,
		Message:   row.Message.String,
	}, true
}
