package dashboard

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/money"
)

type metricResponse struct {
	Key       dashboard.MetricKey `json:"key"`
	Title     string              `json:"title"`
	Amount    float64             `json:"amount"`
	Value     string              `json:"value"`
	Trend     string              `json:"trend"`
	Direction dashboard.Direction `json:"direction"`
}

type revenueResponse struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type activityResponse struct {
	InvoiceID    uuid.UUID             `json:"invoice_id"`
	Number       string                `json:"number"`
	CustomerName string                `json:"customer_name"`
	Amount       float64               `json:"amount"`
	AmountLabel  string                `json:"amount_label"`
	Status       invoice.DisplayStatus `json:"status"`
	Tone         invoice.Tone          `json:"tone"`
}

type summaryResponse struct {
	CurrencyCode  string             `json:"currency_code"`
	TotalBilled   float64            `json:"total_billed"`
	PendingAmount float64            `json:"pending_amount"`
	PendingCount  int                `json:"pending_count"`
	OverdueAmount float64            `json:"overdue_amount"`
	OverdueCount  int                `json:"overdue_count"`
	CustomerCount int                `json:"customer_count"`
	Metrics       []metricResponse   `json:"metrics"`
	Revenue       []revenueResponse  `json:"revenue"`
	Recent        []activityResponse `json:"recent"`
}

func toResponse(s dashboard.Summary) summaryResponse {
	resp := summaryResponse{
		CurrencyCode:  s.CurrencyCode,
		TotalBilled:   s.TotalBilled,
		PendingAmount: s.PendingAmount,
		PendingCount:  s.PendingCount,
		OverdueAmount: s.OverdueAmount,
		OverdueCount:  s.OverdueCount,
		CustomerCount: s.CustomerCount,
		Metrics:       make([]metricResponse, len(s.Metrics)),
		Revenue:       make([]revenueResponse, len(s.Revenue)),
		Recent:        make([]activityResponse, len(s.Recent)),
	}

	for i, m := range s.Metrics {
		resp.Metrics[i] = metricResponse{
			Key:       m.Key,
			Title:     m.Title,
			Amount:    m.Amount,
			Value:     m.Value,
			Trend:     m.Trend.Value,
			Direction: m.Trend.Direction,
		}
	}

	for i, p := range s.Revenue {
		resp.Revenue[i] = revenueResponse{
			Year:   p.Year,
			Month:  int(p.Month),
			Label:  p.Label,
			Amount: p.Amount,
		}
	}

	for i, a := range s.Recent {
		resp.Recent[i] = activityResponse{
			InvoiceID:    a.InvoiceID,
			Number:       a.Number,
			CustomerName: a.CustomerName,
			Amount:       a.Amount,
			AmountLabel:  money.Format(a.Amount, a.CurrencyCode),
			Status:       a.Status,
			Tone:         a.Tone,
		}
	}

	return resp
}
