package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PropertyRef - ссылка на редактируемый объект. Вызывающая сторона может передать
// либо саму запись, либо обертку вида {"propertyData": {...}}.
// Реализаций ровно две: BareRef и WrappedRef.
type PropertyRef interface {
	Record() Property
	isPropertyRef()
}

// BareRef - запись передана как есть.
type BareRef struct {
	Property Property
}

func (r BareRef) Record() Property { return r.Property }
func (BareRef) isPropertyRef()     {}

// WrappedRef - запись вложена в поле propertyData.
type WrappedRef struct {
	PropertyData Property `json:"propertyData"`
}

func (r WrappedRef) Record() Property { return r.PropertyData }
func (WrappedRef) isPropertyRef()     {}

// ParsePropertyRef определяет форму ссылки по JSON. Если нет ни propertyData,
// ни id, возвращается ErrIdentityResolution.
func ParsePropertyRef(raw json.RawMessage) (PropertyRef, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: unexpected property structure: %v", ErrIdentityResolution, err)
	}

	if data, ok := fields["propertyData"]; ok && !isNull(data) {
		var p Property
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed propertyData: %v", ErrIdentityResolution, err)
		}
		return WrappedRef{PropertyData: p}, nil
	}

	if id, ok := fields["id"]; ok && !isNull(id) {
		var p Property
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed property: %v", ErrIdentityResolution, err)
		}
		return BareRef{Property: p}, nil
	}

	return nil, fmt.Errorf("%w: unexpected property structure", ErrIdentityResolution)
}

// ResolveID возвращает нормализованную запись и ее id. Нулевой id считается
// непригодным для обновления.
func ResolveID(ref PropertyRef) (Property, int64, error) {
	if ref == nil {
		return Property{}, 0, ErrIdentityResolution
	}
	record := ref.Record()
	if record.ID == 0 {
		return record, 0, ErrIdentityResolution
	}
	return record, record.ID, nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// RefWith возвращает ссылку той же формы, но с новой записью.
func RefWith(ref PropertyRef, p Property) PropertyRef {
	if _, ok := ref.(WrappedRef); ok {
		return WrappedRef{PropertyData: p}
	}
	return BareRef{Property: p}
}
