package repository

import (
	"github.com/smallbiznis/hoteldesk/internal/employee/domain"
	"github.com/smallbiznis/hoteldesk/pkg/repository"
)

func Provide() domain.Repository {
	return repository.ProvideStore[domain.Employee]()
}
