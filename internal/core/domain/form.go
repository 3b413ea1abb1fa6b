package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// PropertyForm - состояние формы диалога. Все поля вводятся как текст.
type PropertyForm struct {
	Address      string `json:"address"`
	Type         string `json:"type"`
	Bedrooms     string `json:"bedrooms"`
	Bathrooms    string `json:"bathrooms"`
	Valuation    string `json:"valuation"`
	EstateAgent  string `json:"estate_agent"`
	SellingAgent string `json:"selling_agent"`
	Occupied     string `json:"occupied"`
}

// NewPropertyForm возвращает пустую форму со значениями по умолчанию.
func NewPropertyForm() PropertyForm {
	return PropertyForm{Occupied: string(OccupiedNo)}
}

// FormFromProperty заполняет форму редактирования из существующей записи.
func FormFromProperty(p Property) PropertyForm {
	form := NewPropertyForm()
	form.Address = p.Address
	form.Type = string(p.Type)
	if p.Bedrooms != nil {
		form.Bedrooms = strconv.Itoa(*p.Bedrooms)
	}
	if p.Bathrooms != nil {
		form.Bathrooms = FormatNumber(*p.Bathrooms)
	}
	form.Valuation = derefString(p.Valuation)
	form.EstateAgent = derefString(p.EstateAgent)
	form.SellingAgent = derefString(p.SellingAgent)
	if p.Occupied != "" {
		form.Occupied = string(p.Occupied)
	}
	return form
}

// Coerce переводит форму в формат хранилища: спальни - целое, ванные - дробное,
// пустой ввод превращается в null, а не в 0.
func Coerce(form PropertyForm) PropertyInput {
	return PropertyInput{
		Address:      form.Address,
		Type:         form.Type,
		Bedrooms:     ParseIntPrefix(form.Bedrooms),
		Bathrooms:    ParseFloatPrefix(form.Bathrooms),
		Valuation:    form.Valuation,
		EstateAgent:  form.EstateAgent,
		SellingAgent: form.SellingAgent,
		Occupied:     form.Occupied,
	}
}

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseIntPrefix разбирает целое из начала строки ("3.7" -> 3, "2 beds" -> 2).
// Возвращает nil, если число не найдено.
func ParseIntPrefix(s string) *int {
	m := intPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return nil
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &v
}

// ParseFloatPrefix разбирает дробное число из начала строки ("1.5", "2.5 baths").
// Возвращает nil, если число не найдено.
func ParseFloatPrefix(s string) *float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// FormatNumber - кратчайшее десятичное представление: 2 -> "2", 1.5 -> "1.5".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
