package opname

import (
	"context"

	"opname/infrastructure/backend"
)

// LoadPageData fetches the session header and its recorded items from the
// backend and assembles the counting page model.
func LoadPageData(ctx context.Context, api *backend.Client, sessionID int64) (PageData, error) {
	session, err := api.FindSession(ctx, sessionID)
	if err != nil {
		return PageData{}, err
	}

	details, err := api.ListDetails(ctx, sessionID)
	if err != nil {
		return PageData{}, err
	}

	data := PageData{Session: *session}
	for _, detail := range details {
		data.Details = append(data.Details, DetailView{
			ProductID:       detail.ProductID,
			ProductCode:     detail.Product.Code,
			ProductName:     detail.Product.Name,
			ProductCategory: detail.Product.Category,
			Quantity:        detail.Quantity,
			Note:            detail.Note,
		})
	}
	return data, nil
}
