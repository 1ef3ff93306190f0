package home

type PageData struct {
	Message  string
	Location string
}
