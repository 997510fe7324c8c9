package storage

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/LianHaeming/weightlog/models"
)

// Slot keys. They match the keys the browser version of the widget used,
// so an exported localStorage dump can be dropped into a slot store as-is.
const (
	RecordsKey = "weightData"
	GoalKey    = "goalWeight"
)

// WeightStore reads and writes the record sequence and the goal.
// Every call goes to the slot store; nothing is cached.
type WeightStore struct {
	slots Slots
}

func NewWeightStore(slots Slots) *WeightStore {
	return &WeightStore{slots: slots}
}

// Records returns the persisted sequence in insertion order.
// A missing, unreadable or malformed slot reads as no records.
func (s *WeightStore) Records() []models.Record {
	raw, ok, err := s.slots.Get(RecordsKey)
	if err != nil {
		log.WithError(err).Warn("could not read weight records")
		return []models.Record{}
	}
	if !ok {
		return []models.Record{}
	}

	var records []models.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.WithError(err).Warn("invalid weight records JSON, treating as empty")
		return []models.Record{}
	}
	if records == nil {
		records = []models.Record{}
	}
	return records
}

// SaveRecords overwrites the record slot.
func (s *WeightStore) SaveRecords(records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := s.slots.Set(RecordsKey, string(data)); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

// Goal returns the persisted goal. Missing or non-numeric text means no goal.
func (s *WeightStore) Goal() (float64, bool) {
	raw, ok, err := s.slots.Get(GoalKey)
	if err != nil {
		log.WithError(err).Warn("could not read goal weight")
		return 0, false
	}
	if !ok {
		return 0, false
	}
	return models.ParseFinite(raw)
}

// SaveGoal overwrites the goal slot.
func (s *WeightStore) SaveGoal(goal float64) error {
	if err := s.slots.Set(GoalKey, models.FormatGoal(goal)); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}
