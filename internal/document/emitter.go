// Package document turns confirmed orders into downloadable artifacts. The
// rendering itself is a sink: callers hand over structured invoice data and
// receive the artifact location back.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opticart/checkout/internal/domain/model"
)

// Emitter produces an invoice artifact for a confirmed order.
type Emitter interface {
	Emit(ctx context.Context, invoice model.Invoice) (string, error)
}

// FileEmitter renders invoices as JSON artifacts in a directory. One file
// per order id, so re-emitting the same order overwrites instead of
// accumulating duplicates.
type FileEmitter struct {
	dir string
}

type invoiceArtifact struct {
	OrderID  string        `json:"orderId"`
	Amount   int64         `json:"amount"`
	Method   string        `json:"paymentMethod"`
	Customer artifactUser  `json:"customer"`
	Items    []artifactRow `json:"items"`
	IssuedAt time.Time     `json:"issuedAt"`
}

type artifactUser struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type artifactRow struct {
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	AddOn     string `json:"addOn,omitempty"`
	LineTotal int64  `json:"lineTotal"`
}

// NewFileEmitter creates the artifact directory if needed.
func NewFileEmitter(dir string) (*FileEmitter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create invoice dir: %w", err)
	}
	return &FileEmitter{dir: dir}, nil
}

// Emit writes the invoice artifact and returns its path.
func (e *FileEmitter) Emit(_ context.Context, invoice model.Invoice) (string, error) {
	artifact := invoiceArtifact{
		OrderID: invoice.OrderID,
		Amount:  invoice.Amount,
		Method:  string(invoice.Method),
		Customer: artifactUser{
			Name:    invoice.Customer.FullName(),
			Phone:   invoice.Customer.Phone,
			Email:   invoice.Customer.Email,
			Address: invoice.Customer.Address,
			City:    invoice.Customer.City,
			State:   invoice.Customer.State,
			Zip:     invoice.Customer.PostalCode,
		},
		IssuedAt: invoice.IssuedAt,
	}
	for _, item := range invoice.Items {
		row := artifactRow{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		}
		if item.AddOn != nil {
			row.AddOn = item.AddOn.Name
		}
		artifact.Items = append(artifact.Items, row)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, fmt.Sprintf("invoice-%s.json", invoice.OrderID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	return path, nil
}
