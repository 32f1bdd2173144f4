package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/booking/domain"
	catalogdomain "github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"gorm.io/gorm"
)

// buildItems resolves every requested line against the live catalog and
// prices it. Unknown and soft-deleted services are rejected.
func (s *Service) buildItems(ctx context.Context, tx *gorm.DB, inputs []domain.ItemInput) ([]domain.Item, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidItems
	}

	ids := make([]snowflake.ID, 0, len(inputs))
	for _, in := range inputs {
		if in.ServiceID == 0 {
			return nil, domain.ErrInvalidService
		}
		ids = append(ids, in.ServiceID)
	}
	services, err := s.serviceRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[snowflake.ID]catalogdomain.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	items := make([]domain.Item, 0, len(inputs))
	for _, in := range inputs {
		svc, ok := byID[in.ServiceID]
		if !ok || svc.Deleted() {
			return nil, domain.ErrInvalidService
		}
		item, err := newItem(svc, in)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func newItem(svc catalogdomain.Service, in domain.ItemInput) (domain.Item, error) {
	priceType := in.PriceType
	if priceType == "" {
		priceType = pricing.PriceTypeCustom
	}
	if !priceType.Valid() {
		return domain.Item{}, domain.ErrInvalidPriceType
	}
	if in.Units.IsNegative() || in.CustomPrice.IsNegative() || in.DiscountAmount.IsNegative() {
		return domain.Item{}, domain.ErrInvalidAmount
	}

	var variant *catalogdomain.Variant
	if in.VariantName != "" {
		for i := range svc.Variants {
			if svc.Variants[i].Name == in.VariantName {
				variant = &svc.Variants[i]
				break
			}
		}
		if variant == nil {
			return domain.Item{}, domain.ErrInvalidVariant
		}
	}

	item := domain.Item{
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		VariantName:    in.VariantName,
		AllowOverlap:   svc.AllowOverlap,
		PriceType:      priceType,
		Units:          in.Units,
		CustomPrice:    in.CustomPrice,
		DiscountAmount: in.DiscountAmount,
	}
	switch {
	case in.UnitPrice != nil:
		if in.UnitPrice.IsNegative() {
			return domain.Item{}, domain.ErrInvalidAmount
		}
		item.UnitPrice = *in.UnitPrice
	case variant != nil:
		for _, p := range variant.Prices {
			if p.Type == priceType {
				item.UnitPrice = p.Price
				break
			}
		}
	}

	item.Total = pricing.LineTotal(item.Line())
	return item, nil
}
