package models

// Receipt is the display projection of a completed payment session. The
// payment processor owns the underlying state; this is read-only.
type Receipt struct {
	PaymentStatus string        `json:"paymentStatus"`
	CustomerName  string        `json:"customerName,omitempty"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	Address       string        `json:"address,omitempty"`
	Items         []ReceiptItem `json:"items"`
	AmountTotal   int64         `json:"amountTotal"`
	Currency      string        `json:"currency"`
}

// ReceiptItem is one purchased line as reported by the payment processor.
type ReceiptItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	AmountTotal int64  `json:"amountTotal"`
}
