package models

// Record is one dated weight measurement.
type Record struct {
	ID     string  `json:"id,omitempty"`
	Date   string  `json:"date"` // "2025-02-20", stored as entered
	Weight float64 `json:"weight"`
}

// Latest returns the last-inserted record. Insertion order wins over date order.
func Latest(records []Record) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	return records[len(records)-1], true
}

// IndexOf returns the position of the record with the given id, or -1.
func IndexOf(records []Record, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// RemoveAt returns a copy of records without the element at index.
// An out-of-range index returns the input unchanged and false.
func RemoveAt(records []Record, index int) ([]Record, bool) {
	if index < 0 || index >= len(records) {
		return records, false
	}
	out := make([]Record, 0, len(records)-1)
	out = append(out, records[:index]...)
	out = append(out, records[index+1:]...)
	return out, true
}
