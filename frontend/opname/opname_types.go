package opname

import "opname/models"

// FormState repopulates the input form after a failed submit so the user
// can retry without retyping.
type FormState struct {
	ProductID   string
	ProductName string
	Quantity    string
	Note        string
}

// DetailView is one recorded item row. The data attributes rendered from
// it also drive the pre-fill-on-reselect behavior in the page script.
type DetailView struct {
	ProductID       int64
	ProductCode     string
	ProductName     string
	ProductCategory string
	Quantity        int64
	Note            string
}

type PageData struct {
	Session models.Session
	Details []DetailView
	Message string
	Form    FormState
}

// CanComplete reports whether the completion action is offered: only for
// active sessions with at least one recorded item.
func (d PageData) CanComplete() bool {
	return d.Session.Active() && len(d.Details) > 0
}
