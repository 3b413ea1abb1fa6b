package portfolio

import "portfolio-service/internal/core/domain"

func property(id int64, address string, opts ...func(*domain.Property)) domain.Property {
	p := domain.Property{
		ID:       id,
		Address:  address,
		Type:     domain.PropertyTypeHouse,
		Occupied: domain.OccupiedNo,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withValuation(v string) func(*domain.Property) {
	return func(p *domain.Property) { p.Valuation = domain.StringPtr(v) }
}

func withRooms(bedrooms int, bathrooms float64) func(*domain.Property) {
	return func(p *domain.Property) {
		p.Bedrooms = domain.IntPtr(bedrooms)
		p.Bathrooms = domain.FloatPtr(bathrooms)
	}
}

func withAgents(estate, selling string) func(*domain.Property) {
	return func(p *domain.Property) {
		p.EstateAgent = domain.StringPtr(estate)
		p.SellingAgent = domain.StringPtr(selling)
	}
}

func withType(t domain.PropertyType) func(*domain.Property) {
	return func(p *domain.Property) { p.Type = t }
}

func ids(list []domain.Property) []int64 {
	out := make([]int64, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}
