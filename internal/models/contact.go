package models

type ContactRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Issue    string `json:"issue"`
}
