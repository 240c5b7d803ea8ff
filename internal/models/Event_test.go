package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZone = time.FixedZone("MSK", 3*3600)

func TestEvent_Key(t *testing.T) {
	ev := Event{
		OriginalSubject: "Math",
		Start:           time.Date(2024, 1, 15, 9, 0, 0, 0, testZone),
	}
	assert.Equal(t, EventKey{Subject: "Math", Time: "09:00"}, ev.Key())
}

func TestEvent_Date(t *testing.T) {
	ev := Event{Start: time.Date(2024, 1, 15, 9, 0, 0, 0, testZone)}
	assert.Equal(t, "2024-01-15", ev.Date())
}

func TestEventKey_String(t *testing.T) {
	key := EventKey{Subject: "Math", Time: "09:00"}
	assert.Equal(t, "Math|09:00", key.String())
}

func TestEventKey_UnmarshalText_SubjectWithDelimiter(t *testing.T) {
	var key EventKey
	require.NoError(t, key.UnmarshalText([]byte("C|C++|09:00")))
	// Last delimiter wins, the rest belongs to the subject.
	assert.Equal(t, "C|C++", key.Subject)
	assert.Equal(t, "09:00", key.Time)
}

func TestEventKey_UnmarshalText_NoDelimiter(t *testing.T) {
	var key EventKey
	assert.Error(t, key.UnmarshalText([]byte("Math")))
}

func TestEventKey_JSONMapKey(t *testing.T) {
	in := map[EventKey]Edit{
		{Subject: "Math", Time: "09:00"}: {Kind: EditDelete},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out map[EventKey]Edit
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestHomeworkKey_RoundTrip(t *testing.T) {
	key := HomeworkKey{Subject: "Math", Date: "2024-01-15"}

	var parsed HomeworkKey
	require.NoError(t, parsed.UnmarshalText([]byte(key.String())))
	assert.Equal(t, key, parsed)
}

func TestSortEvents_ByStartThenSubject(t *testing.T) {
	events := []Event{
		{OriginalSubject: "B", Start: time.Date(2024, 1, 15, 11, 0, 0, 0, testZone)},
		{OriginalSubject: "Z", Start: time.Date(2024, 1, 15, 9, 0, 0, 0, testZone)},
		{OriginalSubject: "A", Start: time.Date(2024, 1, 15, 9, 0, 0, 0, testZone)},
	}

	SortEvents(events)

	assert.Equal(t, "A", events[0].OriginalSubject)
	assert.Equal(t, "Z", events[1].OriginalSubject)
	assert.Equal(t, "B", events[2].OriginalSubject)
}

func TestEdit_Valid(t *testing.T) {
	assert.True(t, Edit{Kind: EditDelete}.Valid())
	assert.True(t, Edit{Kind: EditModify, Subject: "Algebra"}.Valid())
	assert.True(t, Edit{Kind: EditInsert, Subject: "Algebra", StartTime: "09:00", EndTime: "10:30"}.Valid())

	assert.False(t, Edit{Kind: EditModify}.Valid())
	assert.False(t, Edit{Kind: EditInsert, Subject: "Algebra"}.Valid())
	assert.False(t, Edit{Kind: "rename"}.Valid())
}
