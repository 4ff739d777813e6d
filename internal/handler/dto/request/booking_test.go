//go:build unit

package request_test

import (
	"strings"
	"testing"

	"salon-booking/internal/domain/booking"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/handler/dto/request"
	"salon-booking/tests/common/builder"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, v any) error {
	t.Helper()
	require.NoError(t, request.RegisterValidators())
	return binding.Validator.ValidateStruct(v)
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*request.CreateBookingRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*request.CreateBookingRequest) {}},
		{name: "missing resource", mutate: func(r *request.CreateBookingRequest) { r.ResourceID = uuid.Nil }, wantErr: true},
		{name: "bad date", mutate: func(r *request.CreateBookingRequest) { r.Date = "15/01/2024" }, wantErr: true},
		{name: "bad start", mutate: func(r *request.CreateBookingRequest) { r.StartTime = "25:00" }, wantErr: true},
		{name: "missing price", mutate: func(r *request.CreateBookingRequest) { r.TotalPrice = nil }, wantErr: true},
		{name: "negative price", mutate: func(r *request.CreateBookingRequest) { p := int64(-1); r.TotalPrice = &p }, wantErr: true},
		{name: "zero price", mutate: func(r *request.CreateBookingRequest) { p := int64(0); r.TotalPrice = &p }},
		{name: "no notes", mutate: func(r *request.CreateBookingRequest) { r.Notes = nil }},
		{name: "long notes", mutate: func(r *request.CreateBookingRequest) { n := strings.Repeat("a", 1001); r.Notes = &n }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := builder.NewBookingBuilder().BuildCreateRequestDTO()
			tt.mutate(&req)
			err := validate(t, req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingRequest_ToParams(t *testing.T) {
	bb := builder.NewBookingBuilder()
	actor := user.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	req := bb.BuildCreateRequestDTO()
	req.SubjectID = nil
	p, err := req.ToParams(actor)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, p.SubjectID)
	assert.Equal(t, bb.TotalPrice, p.TotalPrice)
	assert.Equal(t, "2024-01-15 [14:00,15:00)", p.Range.String())

	req = bb.BuildCreateRequestDTO()
	p, err = req.ToParams(actor)
	require.NoError(t, err)
	assert.Equal(t, bb.SubjectID, p.SubjectID)

	req.StartTime, req.EndTime = "15:00", "14:00"
	_, err = req.ToParams(actor)
	assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
}

func TestListBookingsQuery(t *testing.T) {
	q := request.ListBookingsQuery{Status: "PENDING", DateFrom: "2024-01-01", Limit: intPtr(10)}
	require.NoError(t, validate(t, q))
	assert.Equal(t, 10, q.PageSize())

	f, err := q.ToFilter()
	require.NoError(t, err)
	require.NotNil(t, f.Status)
	assert.Equal(t, booking.StatusPending, *f.Status)
	require.NotNil(t, f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.Nil(t, f.ResourceID)
	assert.Nil(t, q.Cursor())

	q.After = "abc"
	assert.Equal(t, "abc", q.Cursor().After)

	assert.Error(t, validate(t, request.ListBookingsQuery{Status: "pending"}))
	assert.Error(t, validate(t, request.ListBookingsQuery{ResourceID: "nope"}))
	assert.Error(t, validate(t, request.ListBookingsQuery{Limit: intPtr(101)}))
	assert.Error(t, validate(t, request.ListBookingsQuery{Limit: intPtr(0)}))

	unset := request.ListBookingsQuery{}
	require.NoError(t, validate(t, unset))
	assert.Equal(t, 0, unset.PageSize())
}

func intPtr(i int) *int { return &i }

func TestUpdateNotesRequest(t *testing.T) {
	empty := ""
	assert.NoError(t, validate(t, request.UpdateNotesRequest{Notes: &empty}))
	assert.Error(t, validate(t, request.UpdateNotesRequest{}))
}
