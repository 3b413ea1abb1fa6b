package domain

import (
	"strings"
)

// PropertyType - тип объекта. Ограничен только на уровне формы.
type PropertyType string

const (
	PropertyTypeHouse PropertyType = "House"
	PropertyTypeFlat  PropertyType = "Flat"
)

// Occupancy - занят ли объект арендаторами.
type Occupancy string

const (
	OccupiedYes Occupancy = "Yes"
	OccupiedNo  Occupancy = "No"
)

// CurrencySymbol - символ валюты, которым может начинаться оценка.
const CurrencySymbol = "£"

// Property - единственная сущность портфеля, строка таблицы properties.
type Property struct {
	ID           int64        `json:"id"`
	Address      string       `json:"address"`
	Type         PropertyType `json:"type"`
	Bedrooms     *int         `json:"bedrooms"`
	Bathrooms    *float64     `json:"bathrooms"`
	Valuation    *string      `json:"valuation"`
	EstateAgent  *string      `json:"estate_agent"`
	SellingAgent *string      `json:"selling_agent"`
	Occupied     Occupancy    `json:"occupied"`
}

// DisplayValuation возвращает оценку для ячейки таблицы, добавляя £, если его нет.
func (p Property) DisplayValuation() string {
	if p.Valuation == nil || *p.Valuation == "" {
		return ""
	}
	if strings.HasPrefix(*p.Valuation, CurrencySymbol) {
		return *p.Valuation
	}
	return CurrencySymbol + *p.Valuation
}

// PropertyInput - строка в том виде, в котором она уходит в удаленное хранилище.
// Пустые числовые поля передаются как null.
type PropertyInput struct {
	Address      string   `json:"address"`
	Type         string   `json:"type"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	Valuation    string   `json:"valuation"`
	EstateAgent  string   `json:"estate_agent"`
	SellingAgent string   `json:"selling_agent"`
	Occupied     string   `json:"occupied"`
}

// ToProperty собирает запись из входных данных и присвоенного сервером id.
// Используется хранилищами, которые сами выдают идентификаторы.
func (in PropertyInput) ToProperty(id int64) Property {
	return Property{
		ID:           id,
		Address:      in.Address,
		Type:         PropertyType(in.Type),
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Valuation:    StringPtr(in.Valuation),
		EstateAgent:  StringPtr(in.EstateAgent),
		SellingAgent: StringPtr(in.SellingAgent),
		Occupied:     Occupancy(in.Occupied),
	}
}

// StringPtr возвращает указатель на копию строки.
func StringPtr(s string) *string {
	return &s
}

// IntPtr возвращает указатель на копию числа.
func IntPtr(i int) *int {
	return &i
}

// FloatPtr возвращает указатель на копию числа.
func FloatPtr(f float64) *float64 {
	return &f
}
