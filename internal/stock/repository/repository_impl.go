package repository

import (
	"github.com/smallbiznis/hoteldesk/internal/stock/domain"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
)

type repo struct {
	repository.Repository[domain.Stock]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Stock]()}
}
