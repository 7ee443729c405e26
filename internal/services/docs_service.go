package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"
	"railway/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the PDF e-ticket of an order, one page per ticket.
type DocsService struct {
	Orders    repositories.OrderStore
	Journeys  repositories.JourneyRepository
	RequestID string
	Loader    func(ctx context.Context, userID, orderID int64) (orderDocData, error)
}

type ticketDocData struct {
	Ticket  models.Ticket
	Journey models.JourneyDetail
}

type orderDocData struct {
	Order   models.Order
	Tickets []ticketDocData
}

// GenerateETicket returns the PDF bytes and a download file name. Only the
// owner's orders are visible; anything else is a NotFoundError.
func (s DocsService) GenerateETicket(ctx context.Context, userID, orderID int64) ([]byte, string, error) {
	data, err := s.loadOrderDocData(ctx, userID, orderID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEventf(s.RequestID, "docs", "generate_eticket", "order_id=%d tickets=%d", orderID, len(data.Tickets))
	return buildETicketPDF(data)
}

func (s DocsService) loadOrderDocData(ctx context.Context, userID, orderID int64) (orderDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, userID, orderID)
	}
	order, err := OrderService{Store: s.Orders, RequestID: s.RequestID}.GetOrder(ctx, userID, orderID)
	if err != nil {
		return orderDocData{}, err
	}

	out := orderDocData{Order: order}
	journeys := map[int64]models.JourneyDetail{}
	for _, t := range order.Tickets {
		j, ok := journeys[t.JourneyID]
		if !ok {
			j, err = s.Journeys.GetDetail(ctx, t.JourneyID)
			if err != nil {
				return orderDocData{}, err
			}
			journeys[t.JourneyID] = j
		}
		out.Tickets = append(out.Tickets, ticketDocData{Ticket: t, Journey: j})
	}
	return out, nil
}

func buildETicketPDF(d orderDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("E-Ticket order #%d", d.Order.ID), false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if len(d.Tickets) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 18)
		pdf.Cell(0, 10, fmt.Sprintf("ORDER #%d", d.Order.ID))
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 7, "This order has no tickets.")
	}

	for _, t := range d.Tickets {
		j := t.Journey
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 18)
		pdf.Cell(0, 10, "E-TICKET")
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "", 12)
		for _, line := range ticketLines(d.Order, t) {
			pdf.Cell(0, 7, tr(line))
			pdf.Ln(7)
		}
		if len(j.Crew) > 0 {
			pdf.Ln(2)
			pdf.MultiCell(0, 6, tr("Crew: "+strings.Join(j.Crew, ", ")), "", "", false)
		}

		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Valid for one passenger on the journey above. Present it when boarding.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "could not render e-ticket", Err: err}
	}
	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.Order.ID, utils.FormatDate(d.Order.CreatedAt))
	return buf.Bytes(), filename, nil
}

func ticketLines(o models.Order, t ticketDocData) []string {
	j := t.Journey
	return []string{
		fmt.Sprintf("Ticket      : TCK-%d-%d", o.ID, t.Ticket.ID),
		fmt.Sprintf("Order       : #%d (%s)", o.ID, utils.FormatDateTime(o.CreatedAt)),
		fmt.Sprintf("Route       : %s -> %s", safe(j.Route.SourceName, "-"), safe(j.Route.DestinationName, "-")),
		fmt.Sprintf("Distance    : %d km", j.Route.Distance),
		fmt.Sprintf("Train       : %s (%s), %d seats", safe(j.Train.Name, "-"), safe(j.Train.TrainType.Name, "-"), j.Train.Capacity()),
		fmt.Sprintf("Departure   : %s", utils.FormatDateTime(j.DepartureTime)),
		fmt.Sprintf("Arrival     : %s", utils.FormatDateTime(j.ArrivalTime)),
		fmt.Sprintf("Cargo / Seat: %d / %d", t.Ticket.Cargo, t.Ticket.Seat),
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
