package communicationRepository

import (
	"context"
	"fmt"
	"os"
	"strings"

	"GestureTalk/internal/entity"
	contextPkg "GestureTalk/pkg/context"
	"GestureTalk/pkg/gesture"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// NewFileSource serves the phrase catalog from the bundled sentences file.
// Used when no database is configured, so the service runs standalone with
// the same Repository contract.
func NewFileSource(path string, log *logrus.Logger) Repository {
	return &fileRepository{
		path: path,
		log:  log,
	}
}

type fileRepository struct {
	path string
	log  *logrus.Logger
}

func (r *fileRepository) NewClient(tx bool) (Client, error) {
	return Client{
		Phrases:  &filePhraseSource{path: r.path, log: r.log},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type filePhraseSource struct {
	path string
	log  *logrus.Logger
}

type phraseJSON struct {
	ID        string `json:"id"`
	Direction string `json:"direction"`
	Message   string `json:"message"`
}

func (s *filePhraseSource) GetAllPhrases(ctx context.Context) ([]entity.Phrase, error) {
	requestID := contextPkg.GetRequestID(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       s.path,
			"error":      err.Error(),
		}).Error("Failed to read sentences file")
		return nil, fmt.Errorf("failed to read sentences file: %w", err)
	}

	var rows []phraseJSON
	if err := jsoniter.Unmarshal(data, &rows); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       s.path,
			"error":      err.Error(),
		}).Error("Failed to parse sentences file")
		return nil, fmt.Errorf("failed to parse sentences file: %w", err)
	}

	var phrases []entity.Phrase
	for i, row := range rows {
		if strings.TrimSpace(row.ID) == "" || strings.TrimSpace(row.Message) == "" {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"index":      i,
			}).Warn("Skipping catalog entry with missing id or message")
			continue
		}

		direction, ok := gesture.ParseDirection(row.Direction)
		if !ok {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"phrase_id":  row.ID,
				"direction":  row.Direction,
			}).Warn("Skipping catalog entry with invalid direction")
			continue
		}

		phrases = append(phrases, entity.Phrase{
			ID:        row.ID,
			Direction: direction,
			Message:   row.Message,
		})
	}

	return phrases, nil
}
