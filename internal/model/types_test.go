package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONFormat(t *testing.T) {
	d := NewDate(1990, time.January, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-01-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"05/01/1990"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}

func TestDateScanTruncatesTimeComponent(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2026, time.March, 10), d)
}

func TestTimeOfDayJSONFormat(t *testing.T) {
	tod := TimeOfDay{Hour: 9, Minute: 5}

	data, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(data))

	var back TimeOfDay
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tod, back)
}

func TestTimeOfDayParseAcceptsSeconds(t *testing.T) {
	tod, err := ParseTimeOfDay("14:30:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 30}, tod)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestTimeOfDayValueIncludesSeconds(t *testing.T) {
	v, err := TimeOfDay{Hour: 9, Minute: 30}.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", v)
}

func TestPatientRequestApplyPreservesIdentity(t *testing.T) {
	email := "old@example.com"
	createdAt := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := &Patient{
		FirstName:            "Ana",
		IdentificationNumber: "CC-1001",
		Email:                &email,
		CreatedAt:            createdAt,
	}
	id := p.ID

	dob := NewDate(1985, time.June, 15)
	req := &PatientRequest{
		FirstName:            "Jane",
		LastName:             "Smith",
		IdentificationNumber: "CC-1001",
		IdentificationType:   IdentificationTypeNationalID,
		DateOfBirth:          &dob,
	}
	req.Apply(p)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, createdAt, p.CreatedAt)
	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "Smith", p.LastName)
	assert.Equal(t, dob, p.DateOfBirth)
	// Full replace: optional fields not in the request reset to nil.
	assert.Nil(t, p.Email)
}

func TestPatientRequestApplyNilDateOfBirth(t *testing.T) {
	dob := NewDate(1990, time.January, 1)
	p := &Patient{DateOfBirth: dob}

	req := &PatientRequest{FirstName: "Jane"}
	req.Apply(p)

	assert.Equal(t, dob, p.DateOfBirth)
}
