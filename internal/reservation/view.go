package reservation

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
)

// SeatView is a seat as presented to the booking screen: the wire
// record plus the derived state.  State and Selectable are computed on
// demand from (server status, holder, selection membership) and are
// never stored, so what the screen shows cannot drift from the lock
// state the session believes in.
type SeatView struct {
	model.Seat
	State      SeatState `json:"state"`
	Selectable bool      `json:"selectable"`
	Pending    bool      `json:"pending"` // request in flight, clicks dropped
}

// RowView is one rendered row of the grid.
type RowView struct {
	Label string     `json:"row"`
	Seats []SeatView `json:"seats"`
}

// Summary is the display-only pricing panel.  TicketTotal follows the
// backend's per-seat price; ServiceFee is the gateway's flat fee and is
// never sent to the backend, whose own total remains the authoritative
// charge.
type Summary struct {
	SeatCount   int             `json:"seat_count"`
	TicketTotal decimal.Decimal `json:"ticket_total"`
	ServiceFee  decimal.Decimal `json:"service_fee"`
	Total       decimal.Decimal `json:"total"`
}

// View is the full state of the seat-selection screen: show header,
// seat grid in server order, the ordered selection and the summary.
type View struct {
	Show     *model.Show `json:"show"`
	Rows     []RowView   `json:"rows"`
	Selected []SeatView  `json:"selected"`
	Summary  Summary     `json:"summary"`
}

// viewOf derives the view of a single seat.  Caller holds the mutex.
func (s *Session) viewOf(seat model.Seat) SeatView {
	state := StateOf(seat, s.userID, s.isSelected(seat.ID))
	_, pending := s.pending[seat.ID]
	return SeatView{
		Seat:       seat,
		State:      state,
		Selectable: state.Selectable() && !pending,
		Pending:    pending,
	}
}

// View renders the whole screen state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Show: s.show, Rows: make([]RowView, 0, len(s.rows))}
	for _, ref := range s.rows {
		row := RowView{Label: ref.label, Seats: make([]SeatView, 0, len(ref.ids))}
		for _, id := range ref.ids {
			row.Seats = append(row.Seats, s.viewOf(s.seats[id]))
		}
		v.Rows = append(v.Rows, row)
	}
	for _, id := range s.selected {
		v.Selected = append(v.Selected, s.viewOf(s.seats[id]))
	}
	v.Summary = s.summary()
	return v
}

// summary computes the pricing panel.  Caller holds the mutex.
func (s *Session) summary() Summary {
	count := len(s.selected)
	ticketTotal := s.show.TicketPrice.Mul(decimal.NewFromInt(int64(count)))
	return Summary{
		SeatCount:   count,
		TicketTotal: ticketTotal,
		ServiceFee:  s.fee,
		Total:       ticketTotal.Add(s.fee),
	}
}
