package accessrequest

import (
	"volentia/internal/domain"
)

// Repository defines the interface for AccessRequest persistence.
type Repository interface {
	domain.Repository[*AccessRequest]
}
