package response

import (
	"time"

	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID         string  `json:"id"`
	ResourceID string  `json:"resourceId"`
	SubjectID  string  `json:"customerId"`
	ServiceID  string  `json:"serviceId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	TotalPrice int64   `json:"totalPrice"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  int64   `json:"createdAt"`
	UpdatedAt  int64   `json:"updatedAt"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

var copyOpts = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return src.(time.Time).Unix(), nil
			},
		},
	},
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	res := &BookingResponse{}
	if err := copier.CopyWithOption(res, v, copyOpts); err != nil {
		return nil, err
	}
	return res, nil
}

func FromBookingList(views []*queries.BookingView, next *queries.Cursor) (*BookingListResponse, error) {
	out := &BookingListResponse{Items: make([]*BookingResponse, 0, len(views))}
	for _, v := range views {
		res, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, res)
	}
	if next != nil {
		out.NextCursor = next.After
	}
	return out, nil
}
