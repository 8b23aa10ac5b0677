package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Booking struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Date      string    `json:"date" bson:"date"`
	Time      string    `json:"time" bson:"time"`
	Members   Members   `json:"members" bson:"members"`
	Status    Status    `json:"status" bson:"status"`
	Seats     string    `json:"seats,omitempty" bson:"seats,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type BookingRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required"`
	Date    string  `json:"date" validate:"required"`
	Time    string  `json:"time" validate:"required"`
	Members Members `json:"members" validate:"required"`
}

type RespondRequest struct {
	BookingID string
	Status    Status
	Seats     string
}

// Members is the party size as submitted. Clients send either a number or a
// string; zero, null and the empty string all decode to "absent".
type Members string

func (m *Members) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Members(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("members must be a number or a string: %w", err)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*m = ""
		return nil
	}
	*m = Members(n.String())
	return nil
}

func (m Members) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(m), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(m))
}

func (m Members) String() string {
	return string(m)
}
