package cows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_RegisterInput(t *testing.T) {
	cases := []struct {
		name string
		in   RegisterInput
		want map[string]string
	}{
		{"valid", RegisterInput{EarTag: "1", Sex: SexMale, Pen: "A1", Status: StatusActive, Weight: Float(1)}, nil},
		{"status optional", RegisterInput{EarTag: "1", Sex: SexFemale, Pen: "A1"}, nil},
		{"bad sex", RegisterInput{EarTag: "1", Sex: "steer", Pen: "A1"}, map[string]string{"sex": "Sex must be male or female"}},
		{"bad status", RegisterInput{EarTag: "1", Sex: SexMale, Pen: "A1", Status: "Sold"}, map[string]string{"status": "Status must be Active, In Treatment or Deceased"}},
		{"zero weight", RegisterInput{EarTag: "1", Sex: SexMale, Pen: "A1", Weight: Float(0)}, map[string]string{"weight": "Weight must be a positive number"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ve := validateStruct(tc.in)
			if tc.want == nil {
				assert.Nil(t, ve)
				return
			}
			require.NotNil(t, ve)
			assert.Equal(t, tc.want, ve.Fields)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{Fields: map[string]string{"pen": "Pen is required", "earTag": "Ear tag is required"}})

	assert.Equal(t, "validation failed: earTag: Ear tag is required; pen: Pen is required", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 2)

	_, ok = AsValidationError(errors.New("boom"))
	assert.False(t, ok)
}
