package domain

// SiteSettings is the singleton record of contact and social links
type SiteSettings struct {
	SiteName       string `json:"siteName" db:"site_name"`
	FacebookURL    string `json:"facebookUrl" db:"facebook_url"`
	InstagramURL   string `json:"instagramUrl" db:"instagram_url"`
	WhatsappNumber string `json:"whatsappNumber" db:"whatsapp_number"`
	PhoneNumber    string `json:"phoneNumber" db:"phone_number"`
	Email          string `json:"email" db:"email"`
}
