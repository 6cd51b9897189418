package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/nhle/ticketboard/internal/model"
)

// Payload is the wire shape shared by the api and file sources:
//
//	{"tickets": [{id, title, status, priority, userId, tag}], "users": [{id, name}]}
type Payload struct {
	Tickets []WireTicket `json:"tickets"`
	Users   []WireUser   `json:"users"`

	// invalid counts records DecodePayload dropped because a field had
	// the wrong JSON type.
	invalid int
}

// rawPayload defers record decoding so one bad record cannot reject the
// rest of the payload.
type rawPayload struct {
	Tickets []json.RawMessage `json:"tickets"`
	Users   []json.RawMessage `json:"users"`
}

// WireTicket is a ticket record as sent by the endpoint. Every field is
// optional on the wire; ToSnapshot applies defaults.
type WireTicket struct {
	ID       FlexString `json:"id"`
	Title    string     `json:"title"`
	Status   string     `json:"status"`
	Priority *int       `json:"priority"`
	UserID   FlexString `json:"userId"`
	Tag      FlexTags   `json:"tag"`
}

// WireUser is a user record as sent by the endpoint.
type WireUser struct {
	ID        FlexString `json:"id"`
	Name      string     `json:"name"`
	Available bool       `json:"available"`
}

// FlexString accepts a JSON string or number and keeps its text.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexTags accepts a single string or an array of strings.
type FlexTags []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexTags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var tags []string
		if err := json.Unmarshal(data, &tags); err != nil {
			return err
		}
		*f = tags
		return nil
	default:
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return fmt.Errorf("tag must be a string or array of strings: %w", err)
		}
		if tag == "" {
			*f = nil
		} else {
			*f = FlexTags{tag}
		}
		return nil
	}
}

// DecodePayload parses a raw payload. Only a document that is not an
// object with record arrays is an error; a record that fails to decode is
// dropped and counted as skipped by ToSnapshot.
func DecodePayload(data []byte) (*Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	p := &Payload{
		Tickets: make([]WireTicket, 0, len(raw.Tickets)),
		Users:   make([]WireUser, 0, len(raw.Users)),
	}
	for _, r := range raw.Tickets {
		var wt WireTicket
		if err := json.Unmarshal(r, &wt); err != nil {
			p.invalid++
			continue
		}
		p.Tickets = append(p.Tickets, wt)
	}
	for _, r := range raw.Users {
		var wu WireUser
		if err := json.Unmarshal(r, &wu); err != nil {
			p.invalid++
			continue
		}
		p.Users = append(p.Users, wu)
	}
	return p, nil
}

// ToSnapshot converts wire records into model values. Tickets and users
// without an id are dropped and counted in skipped, along with records
// DecodePayload could not decode. Every other missing field takes its
// zero value.
func (p *Payload) ToSnapshot() (snap *model.Snapshot, skipped int) {
	snap = model.EmptySnapshot()
	skipped = p.invalid

	for _, wt := range p.Tickets {
		id := strings.TrimSpace(string(wt.ID))
		if id == "" {
			skipped++
			continue
		}
		t := model.Ticket{
			ID:     id,
			Title:  wt.Title,
			Status: model.Status(wt.Status),
			UserID: string(wt.UserID),
		}
		if wt.Priority != nil {
			t.Priority = model.Priority(*wt.Priority)
		}
		if len(wt.Tag) > 0 {
			t.Tags = append([]string(nil), wt.Tag...)
		}
		snap.Tickets = append(snap.Tickets, t)
	}

	for _, wu := range p.Users {
		id := strings.TrimSpace(string(wu.ID))
		if id == "" {
			skipped++
			continue
		}
		snap.Users = append(snap.Users, model.User{
			ID:        id,
			Name:      wu.Name,
			Available: wu.Available,
		})
	}

	return snap, skipped
}

// FromSnapshot builds the wire payload for a snapshot, e.g. to write a
// fixture file that the file source can read back.
func FromSnapshot(s *model.Snapshot) *Payload {
	p := &Payload{
		Tickets: make([]WireTicket, 0, len(s.Tickets)),
		Users:   make([]WireUser, 0, len(s.Users)),
	}
	for _, t := range s.Tickets {
		prio := int(t.Priority)
		p.Tickets = append(p.Tickets, WireTicket{
			ID:       FlexString(t.ID),
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: &prio,
			UserID:   FlexString(t.UserID),
			Tag:      FlexTags(t.Tags),
		})
	}
	for _, u := range s.Users {
		p.Users = append(p.Users, WireUser{
			ID:        FlexString(u.ID),
			Name:      u.Name,
			Available: u.Available,
		})
	}
	return p
}
