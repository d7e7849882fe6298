package v1

import "time"

type SignupStatus string

const (
	SignupPending  SignupStatus = "PENDING"
	SignupApproved SignupStatus = "APPROVED"
	SignupRejected SignupStatus = "REJECTED"
)

type SignupRequest struct {
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Name          string `json:"name" binding:"required"`
	RequestedRole string `json:"requestedRole" binding:"required"`
	Reason        string `json:"reason"`
}

type SignupRecord struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	Name          string       `json:"name"`
	RequestedRole string       `json:"requestedRole"`
	Reason        string       `json:"reason"`
	Status        SignupStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type SignupListResponse struct {
	Data []SignupRecord `json:"data"`
}
