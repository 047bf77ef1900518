package handlers

import (
	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/gateway"
	"github.com/opticart/checkout/internal/server/http/dto"
	"github.com/opticart/checkout/internal/usecase"
)

func paymentMethod(s string) model.PaymentMethod {
	return model.PaymentMethod(s)
}

func toCartItems(items []dto.CartItemDTO) []model.CartItem {
	result := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		out := model.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
		if item.AddOn != nil {
			out.AddOn = &model.AddOn{Name: item.AddOn.Name, Price: item.AddOn.Price}
		}
		result = append(result, out)
	}
	return result
}

func toCustomer(c dto.CustomerDTO) model.CustomerDetails {
	return model.CustomerDetails{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
	}
}

func toCustomerDTO(c model.CustomerDetails) dto.CustomerDTO {
	return dto.CustomerDTO{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
	}
}

func toOutcomeDTO(outcome model.CheckoutOutcome) *dto.OutcomeDTO {
	return &dto.OutcomeDTO{
		Status:  string(outcome.Status),
		OrderID: outcome.OrderID,
		Reason:  outcome.Reason,
	}
}

func toGatewaySessionDTO(opts gateway.SessionOptions) *dto.GatewaySessionDTO {
	session := &dto.GatewaySessionDTO{
		KeyID:    opts.KeyID,
		Amount:   opts.Amount,
		Currency: opts.Currency,
		OrderID:  opts.OrderID,
	}
	session.Prefill.Name = opts.Prefill.Name
	session.Prefill.Email = opts.Prefill.Email
	session.Prefill.Contact = opts.Prefill.Contact
	session.Theme.Color = opts.Theme.Color
	return session
}

func toFieldErrorDTOs(fields []usecase.FieldError) []dto.FieldErrorDTO {
	result := make([]dto.FieldErrorDTO, 0, len(fields))
	for _, f := range fields {
		result = append(result, dto.FieldErrorDTO{Field: f.Field, Message: f.Message})
	}
	return result
}
