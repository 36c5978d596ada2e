package cows

import "time"

// Sex es inmutable después del alta.
// @Enum male, female
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Status del animal en el catálogo.
// @Enum Active, In Treatment, Deceased
type Status string

const (
	StatusActive      Status = "Active"
	StatusInTreatment Status = "In Treatment"
	StatusDeceased    Status = "Deceased"
)

// Statuses en el orden en que se muestran.
var Statuses = []Status{StatusActive, StatusInTreatment, StatusDeceased}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type EventType string

const (
	EventCreated     EventType = "created"
	EventWeightCheck EventType = "weight_check"
	EventTreatment   EventType = "treatment"
	EventPenMove     EventType = "pen_move"
	EventDeath       EventType = "death"
)

// CowEvent es un hecho inmutable del historial.
// Date no es monotónico respecto al orden de inserción: ordenar antes de usar.
type CowEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`

	Weight  *float64 `json:"weight,omitempty"`  // solo weight_check
	FromPen string   `json:"fromPen,omitempty"` // solo pen_move
	ToPen   string   `json:"toPen,omitempty"`   // solo pen_move
}

type Cow struct {
	ID     string `json:"id"`
	EarTag string `json:"earTag"`
	Sex    Sex    `json:"sex"`
	Pen    string `json:"pen"`
	Status Status `json:"status"`

	// Weight actual en kg. Se setea en el alta; no se recalcula desde events.
	Weight *float64 `json:"weight,omitempty"`

	Events    []CowEvent `json:"events"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Float es un helper para armar campos opcionales.
func Float(v float64) *float64 {
	return &v
}
