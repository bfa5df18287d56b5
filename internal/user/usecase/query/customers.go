package query

import (
	"context"

	orderquery "github.com/tair/nutribakery/internal/order/usecase/query"
	"github.com/tair/nutribakery/internal/user/domain"
)

// CustomerDirectory serves order listings with owner contact details
type CustomerDirectory struct {
	repo domain.UserRepository
}

func NewCustomerDirectory(repo domain.UserRepository) *CustomerDirectory {
	return &CustomerDirectory{repo: repo}
}

func (d *CustomerDirectory) FindCustomers(ctx context.Context, userIDs []string) (map[string]orderquery.Customer, error) {
	out := make(map[string]orderquery.Customer, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	users, err := d.repo.FindByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.UserID] = orderquery.Customer{
			Name:        u.Username,
			Address:     u.Address,
			PhoneNumber: u.PhoneNumber,
			Email:       u.Email,
		}
	}
	return out, nil
}
