package domain

import "github.com/smallbiznis/hoteldesk/pkg/repository"

type Repository interface {
	repository.Repository[Provider]
}
