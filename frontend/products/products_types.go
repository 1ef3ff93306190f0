package products

import "opname/models"

// FormState repopulates the add-product form after a rejected submit.
type FormState struct {
	Code  string
	Name  string
	Stock string
}

type PageData struct {
	Products []models.Product
	Query    string
	Page     int
	Pages    int
	Total    int
	Message  string
	Status   string
	Form     FormState
}

func (d PageData) HasPrev() bool { return d.Page > 1 }

func (d PageData) HasNext() bool { return d.Page < d.Pages }
