package tracker

import (
	"math"

	"github.com/LianHaeming/weightlog/models"
)

// GoalStatus compares the last-inserted record with the goal field.
// It is empty when the goal reads as zero or not a number, or when there
// are no records.
func GoalStatus(goalInput string, records []models.Record) string {
	goal := models.ParseNumber(goalInput)
	latest, ok := models.Latest(records)
	if goal == 0 || math.IsNaN(goal) || !ok {
		return ""
	}

	diff := models.FormatFixed1(latest.Weight - goal)
	return "最新の体重は目標より " + signOf(diff) + diff + "kg です"
}

// signOf returns "+" when the formatted difference reads as positive.
// Negative values already carry their "-", and "0.0" gets no sign.
func signOf(formatted string) string {
	if models.ParseNumber(formatted) > 0 {
		return "+"
	}
	return ""
}
