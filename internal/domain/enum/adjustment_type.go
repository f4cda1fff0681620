package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// AdjustmentType tells whether a stock adjustment adds or removes units
type AdjustmentType int

const (
	AdjustmentAddition    AdjustmentType = 0
	AdjustmentSubtraction AdjustmentType = 1
)

func (t AdjustmentType) String() string {
	switch t {
	case AdjustmentAddition:
		return "Addition"
	case AdjustmentSubtraction:
		return "Subtraction"
	}
	return fmt.Sprintf("AdjustmentType(%d)", int(t))
}

func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentAddition || t == AdjustmentSubtraction
}

// Sign is +1 for additions and -1 for subtractions
func (t AdjustmentType) Sign() int {
	if t == AdjustmentSubtraction {
		return -1
	}
	return 1
}

func (t AdjustmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *AdjustmentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = AdjustmentType(i)
		return nil
	}
	parsed, err := ParseAdjustmentType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseAdjustmentType accepts "add"/"addition" and "subtract"/"subtraction"
func ParseAdjustmentType(s string) (AdjustmentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "addition", "add":
		return AdjustmentAddition, nil
	case "subtraction", "subtract", "sub":
		return AdjustmentSubtraction, nil
	}
	return AdjustmentAddition, fmt.Errorf("unknown adjustment type %q", s)
}

func (t AdjustmentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *AdjustmentType) Scan(value interface{}) error {
	if value == nil {
		*t = AdjustmentAddition
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = AdjustmentType(v)
	case int:
		*t = AdjustmentType(v)
	}
	return nil
}
