// Package dto contains request and response shapes for the HTTP API
package dto

// DispatchDetailDTO is one dispatch entry inside a messenger's daily grouping
type DispatchDetailDTO struct {
	ID    string            `json:"id"`
	Time  string            `json:"time"`
	Cards int               `json:"cards"`
	Items []DispatchItemDTO `json:"items"`
}

// MessengerReportDTO aggregates one messenger's dispatches for a single date
type MessengerReportDTO struct {
	MessengerName    string              `json:"messenger_name"`
	MessengerContact string              `json:"messenger_contact"`
	TotalCards       int                 `json:"total_cards"`
	Dispatches       []DispatchDetailDTO `json:"dispatches"`
}

// DailyReportResponse is the full daily aggregation, keyed by messenger ID
type DailyReportResponse struct {
	Date            string                         `json:"date"`
	TotalMessengers int                            `json:"total_messengers"`
	TotalDispatches int                            `json:"total_dispatches"`
	TotalCards      int                            `json:"total_cards"`
	Messengers      map[string]*MessengerReportDTO `json:"messengers"`
}
