package types

// Principal is the authenticated caller as carried by the access token
type Principal struct {
	UserID    string
	TenantID  string
	CompanyID string
}
