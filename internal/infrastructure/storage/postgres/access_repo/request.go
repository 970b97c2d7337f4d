package access_repo

import (
	"volentia/internal/domain/accessrequest"
	"volentia/internal/infrastructure/storage/postgres"
	"volentia/internal/infrastructure/storage/postgres/catalog_repo"
)

const requestTable = "access_requests"

// RequestRepo implements accessrequest.Repository.
type RequestRepo struct {
	*catalog_repo.BaseRepo[*accessrequest.AccessRequest]
}

// NewRequestRepo creates a new access request repository.
func NewRequestRepo(txm *postgres.TxManager) *RequestRepo {
	return &RequestRepo{
		BaseRepo: catalog_repo.NewBaseRepo(
			txm,
			requestTable,
			postgres.ExtractDBColumns[accessrequest.AccessRequest](),
			[]string{"email", "company_name", "association_name"},
			func() *accessrequest.AccessRequest { return &accessrequest.AccessRequest{} },
		),
	}
}
