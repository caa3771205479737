package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/optional"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRecordFilter_ToQuery_ResolvesInclusiveDates(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	f := RecordFilter{
		StartDate: strPtr("2024-01-01"),
		EndDate:   strPtr("2024-01-01"),
		Type:      strPtr("entry"),
	}

	q, err := f.ToQuery(loc)
	require.NoError(t, err)

	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.True(t, q.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, loc)))
	assert.True(t, q.To.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, loc)))
	require.NotNil(t, q.Type)
	assert.Equal(t, TypeEntry, *q.Type)
	assert.Nil(t, q.EmployeeID)
	assert.False(t, q.Descending)
	assert.Equal(t, "asc", f.SortOrder)
}

func TestRecordFilter_ToQuery_Empty(t *testing.T) {
	var f RecordFilter
	q, err := f.ToQuery(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, RecordQuery{}, q)
}

func TestRecordFilter_Validate_Errors(t *testing.T) {
	f := RecordFilter{
		StartDate: strPtr("01/01/2024"),
		EndDate:   strPtr("2024-13-01"),
		Type:      strPtr("lunch"),
		SortOrder: "sideways",
	}
	err := f.Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "start_date")
	assert.Contains(t, m, "end_date")
	assert.Contains(t, m, "type")
	assert.Contains(t, m, "sort_order")
}

func TestRecordFilter_ToQuery_Descending(t *testing.T) {
	f := RecordFilter{SortOrder: "DESC", EmployeeID: strPtr("E1")}
	q, err := f.ToQuery(time.UTC)
	require.NoError(t, err)
	assert.True(t, q.Descending)
	require.NotNil(t, q.EmployeeID)
	assert.Equal(t, "E1", *q.EmployeeID)
}

func TestUpdateRecordRequest_Validate(t *testing.T) {
	empty := UpdateRecordRequest{ID: 1}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, empty.Validate(), &verrs)
	assert.Equal(t, "no fields to update", verrs.ToMap()["body"])

	bad := UpdateRecordRequest{ID: 1, Type: optional.Of("break"), Timestamp: optional.Of("noon")}
	require.ErrorAs(t, bad.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "type")
	assert.Contains(t, verrs.ToMap(), "timestamp")

	onlyNotes := UpdateRecordRequest{ID: 1, Notes: optional.Of("")}
	assert.NoError(t, onlyNotes.Validate())
}

func TestUpdateRecordRequest_Patch(t *testing.T) {
	loc := time.FixedZone("UTC+1", 60*60)
	req := UpdateRecordRequest{
		ID:        7,
		Timestamp: optional.Of("2024-03-10 08:15:00"),
		Type:      optional.Of("exit"),
	}
	require.NoError(t, req.Validate())

	patch := req.Patch(loc)
	assert.Equal(t, int64(7), patch.ID)
	require.True(t, patch.Timestamp.Set)
	assert.True(t, patch.Timestamp.Value.Equal(time.Date(2024, 3, 10, 8, 15, 0, 0, loc)))
	assert.Equal(t, optional.Of(TypeExit), patch.Type)
	assert.False(t, patch.Notes.Set)
}

func TestRecordEventRequest_Validate(t *testing.T) {
	ok := RecordEventRequest{EmployeeID: "E1", Type: TypeEntry}
	assert.NoError(t, ok.Validate())

	bad := RecordEventRequest{EmployeeID: "  ", Type: "break"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, bad.Validate(), &verrs)
	assert.Len(t, verrs, 2)
}

func TestRecordType_Label(t *testing.T) {
	assert.Equal(t, "Entry", TypeEntry.Label())
	assert.Equal(t, "Exit", TypeExit.Label())
	assert.Equal(t, "other", RecordType("other").Label())
}
