package models

import "time"

// Customer is a row of the v_customer_client view.
type Customer struct {
	ID                   int64           `json:"id"`
	KiotvietID           int64           `json:"kiotvietId"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	ContactNumber        string          `json:"contactNumber,omitempty"`
	Address              string          `json:"address,omitempty"`
	Group                string          `json:"group,omitempty"`
	GroupName            string          `json:"groupName,omitempty"`
	Debt                 float64         `json:"debt"`
	IsActive             bool            `json:"isActive"`
	CreatedDate          *time.Time      `json:"createdDate,omitempty"`
	RecentInvoices       []RecentInvoice `json:"recentInvoices"`
	RecentInvoiceCount   int             `json:"recentInvoiceCount"`
	TotalInvoiceCount    int             `json:"totalInvoiceCount"`
	TotalPurchaseAmount  float64         `json:"totalPurchaseAmount"`
	TotalPurchaseDisplay string          `json:"totalPurchaseDisplay,omitempty"`
}

type RecentInvoice struct {
	ID           int64   `json:"id"`
	KiotvietID   int64   `json:"kiotvietId"`
	Code         string  `json:"code"`
	PurchaseDate string  `json:"purchaseDate"`
	Total        float64 `json:"total"`
	TotalPayment float64 `json:"totalPayment"`
	Status       int     `json:"status"`
	StatusValue  string  `json:"statusValue"`
	Paid         *bool   `json:"paid,omitempty"`
	BranchName   string  `json:"branchName,omitempty"`
	SoldByName   string  `json:"soldByName,omitempty"`
	Description  string  `json:"description,omitempty"`
}
