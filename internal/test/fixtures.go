package test

import (
	"io"
	"log/slog"

	"github.com/opticart/checkout/internal/domain/model"
)

// Logger returns a logger discarding all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Cart returns a two-line cart with one add-on, total 4497.
func Cart() []model.CartItem {
	return []model.CartItem{
		{
			ProductID: "frame-aviator",
			Name:      "Aviator Frame",
			UnitPrice: 999,
			Quantity:  1,
			AddOn:     &model.AddOn{Name: "Blue Cut Lens", Price: 500},
		},
		{
			ProductID: "frame-wayfarer",
			Name:      "Wayfarer Frame",
			UnitPrice: 1499,
			Quantity:  2,
		},
	}
}

// Customer returns submission-ready customer details.
func Customer() model.CustomerDetails {
	return model.CustomerDetails{
		FirstName:  "Asha",
		LastName:   "Nair",
		Phone:      "9876543210",
		Email:      "asha@example.com",
		Address:    "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
	}
}
