package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("15/05/2025")
	require.NoError(t, err)
	assert.Equal(t, "15/05/2025", date.String())

	for _, invalid := range []string{"2025-05-15", "15/13/2025", "15-05-2025", "yesterday", ""} {
		_, err := ParseDate(invalid)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", invalid)
	}
}

func TestDateOrdering(t *testing.T) {
	earlier, err := ParseDate("01/06/2025")
	require.NoError(t, err)
	later, err := ParseDate("02/06/2025")
	require.NoError(t, err)

	assert.True(t, later.After(*earlier))
	assert.True(t, earlier.Before(*later))
	assert.False(t, earlier.After(*later))
	assert.True(t, earlier.Equal(*earlier))
}

func TestDateJSONRoundTrip(t *testing.T) {
	date, err := ParseDate("01/01/2025")
	require.NoError(t, err)

	data, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"01/01/2025"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(*date))
}

func TestAbsentDateSerializesAsNull(t *testing.T) {
	sub := NewSubTask("no deadline", nil, PriorityLow, "ICT120")

	data, err := json.Marshal(sub)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "null", string(raw["due_date"]))

	var decoded SubTask
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.DueDate)
}
