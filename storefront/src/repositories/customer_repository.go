package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

const customerByCodeQuery = `SELECT customer_id, customer_kiotviet_id, customer_code, customer_name,
	contact_number, address, customer_group, glt_customer_group_name, debt, glt_is_active,
	customer_created_date, recent_invoices, recent_invoice_count, total_invoice_count,
	total_purchase_amount
FROM v_customer_client
WHERE customer_code = $1
LIMIT 1`

// OpenDatabase opens and pings the Postgres database holding the customer view.
func OpenDatabase(ctx context.Context, url string) (*sql.DB, error) {
	database, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// invoiceRow is one element of the recent_invoices JSON column.
type invoiceRow struct {
	ID           int64   `json:"id"`
	KiotvietID   int64   `json:"kiotviet_id"`
	Code         string  `json:"code"`
	PurchaseDate string  `json:"purchase_date"`
	Total        float64 `json:"total"`
	TotalPayment float64 `json:"total_payment"`
	Status       int     `json:"status"`
	StatusValue  string  `json:"status_value"`
	Paid         *bool   `json:"glt_paid"`
	BranchName   *string `json:"branch_name"`
	SoldByName   *string `json:"sold_by_name"`
	Description  *string `json:"description"`
}

func (r *customerRepository) GetByCode(ctx context.Context, code string) (customer models.Customer, appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx,
		semconv.DBSystemPostgreSQL,
		semconv.DBOperationKey.String("SELECT"),
		semconv.DBSQLTableKey.String("v_customer_client"),
		attributes.AttrCustomerCodeKey.String(code),
	)
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	var (
		contact, address, group, groupName sql.NullString
		debt                               sql.NullFloat64
		created                            sql.NullTime
		invoicesJSON                       []byte
	)
	row := r.db.QueryRowContext(ctx, customerByCodeQuery, code)
	err := row.Scan(
		&customer.ID, &customer.KiotvietID, &customer.Code, &customer.Name,
		&contact, &address, &group, &groupName, &debt, &customer.IsActive,
		&created, &invoicesJSON, &customer.RecentInvoiceCount, &customer.TotalInvoiceCount,
		&customer.TotalPurchaseAmount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.InfoContext(ctx, "Customer not found", slog.String("code", code))
		return models.Customer{}, apierrors.NewBusinessError(apierrors.ErrCodeCustomerNotFound,
			"Customer '"+code+"' not found", err)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Customer query failed", slog.String("code", code), slog.Any("error", err))
		return models.Customer{}, apierrors.NewApplicationError(apierrors.ErrCodeDatabaseAccess,
			"Failed to load customer", err)
	}

	customer.ContactNumber = contact.String
	customer.Address = address.String
	customer.Group = group.String
	customer.GroupName = groupName.String
	customer.Debt = debt.Float64
	if created.Valid {
		t := created.Time.In(time.UTC)
		customer.CreatedDate = &t
	}

	customer.RecentInvoices, err = decodeInvoices(invoicesJSON)
	if err != nil {
		r.logger.ErrorContext(ctx, "Malformed recent_invoices column", slog.String("code", code), slog.Any("error", err))
		return models.Customer{}, apierrors.NewApplicationError(apierrors.ErrCodeMalformedData,
			"Customer invoices are malformed", err)
	}

	r.logger.DebugContext(ctx, "Customer loaded",
		slog.String("code", code),
		slog.Int("recent_invoices", len(customer.RecentInvoices)))
	return customer, nil
}

func decodeInvoices(data []byte) ([]models.RecentInvoice, error) {
	out := make([]models.RecentInvoice, 0)
	if len(data) == 0 {
		return out, nil
	}
	var rows []invoiceRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out = append(out, models.RecentInvoice{
			ID:           row.ID,
			KiotvietID:   row.KiotvietID,
			Code:         row.Code,
			PurchaseDate: row.PurchaseDate,
			Total:        row.Total,
			TotalPayment: row.TotalPayment,
			Status:       row.Status,
			StatusValue:  row.StatusValue,
			Paid:         row.Paid,
			BranchName:   deref(row.BranchName),
			SoldByName:   deref(row.SoldByName),
			Description:  deref(row.Description),
		})
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
