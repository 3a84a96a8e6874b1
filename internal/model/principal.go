package model

import "github.com/google/uuid"

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool      { return p.Role == "ADMIN" }
func (p Principal) IsAccountant() bool { return p.Role == "ACCOUNTANT" }
func (p Principal) IsSales() bool      { return p.Role == "SALES" }
