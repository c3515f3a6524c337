package product

func ToResponse(p Product) ProductResponse {
	return ProductResponse{
		ProductID:            p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		AvailabilityQuantity: p.AvailabilityQuantity,
		Price:                p.Price,
	}
}

func ToResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToResponse(p))
	}
	return out
}
